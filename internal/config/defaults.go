package config

import (
	_ "embed"
)

//go:embed defaults/factory.yaml
var defaultFactoryYAML []byte

// DefaultFactoryConfig returns the built-in configuration: a 62x36 board
// and five levels with divisors 1 to 5.
func DefaultFactoryConfig() FactoryConfig {
	return FactoryConfig{
		Board: BoardConfig{
			Width:    62,
			Height:   36,
			GoalSize: 4,
			Walls:    100,
		},
		Conveyor: ConveyorConfig{
			BufferSize: 10,
		},
		Mining: MiningConfig{
			Period:          100,
			ResourceRange:   30,
			ResourceNumbers: []int{1, 2, 3, 5, 7, 11},
		},
		Game: GameConfig{
			EndTime:        9000,
			ActionInterval: 3,
		},
		Levels: []LevelConfig{
			{ID: "1a", Name: "Anything goes", CommonDivisor: 1, Seed: 20},
			{ID: "2a", Name: "Evens", CommonDivisor: 2, Seed: 25},
			{ID: "3a", Name: "Threes", CommonDivisor: 3, Seed: 30},
			{ID: "4a", Name: "Fours", CommonDivisor: 4, Seed: 35},
			{ID: "5a", Name: "Fives", CommonDivisor: 5, Seed: 40},
		},
	}
}
