// Package config provides YAML-based configuration for the factory game:
// board dimensions, structure parameters and the level list.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

// FactoryConfig contains all configuration for the factory game.
type FactoryConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Conveyor ConveyorConfig `yaml:"conveyor"`
	Mining   MiningConfig   `yaml:"mining"`
	Game     GameConfig     `yaml:"game"`
	Levels   []LevelConfig  `yaml:"levels"`
}

// BoardConfig defines the board and its fixed structures.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	GoalSize int `yaml:"goal_size"` // collection center edge length
	Walls    int `yaml:"walls"`     // wall placement attempts
}

// ConveyorConfig defines conveyor parameters.
type ConveyorConfig struct {
	BufferSize int `yaml:"buffer_size"`
}

// MiningConfig defines how resources are laid out and extracted.
type MiningConfig struct {
	Period          int   `yaml:"period"`
	ResourceRange   int   `yaml:"resource_range"`
	ResourceNumbers []int `yaml:"resource_numbers"`
}

// GameConfig defines the clock.
type GameConfig struct {
	EndTime        int `yaml:"end_time"`
	ActionInterval int `yaml:"action_interval"`
}

// LevelConfig is one playable level: a scoring divisor and a board seed.
type LevelConfig struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	CommonDivisor int    `yaml:"common_divisor"`
	Seed          int64  `yaml:"seed"`
}

// Engine builds the immutable engine configuration for a level.
func (c FactoryConfig) Engine(level LevelConfig) core.Config {
	return core.Config{
		BoardWidth:         c.Board.Width,
		BoardHeight:        c.Board.Height,
		GoalSize:           c.Board.GoalSize,
		ConveyorBufferSize: c.Conveyor.BufferSize,
		NumberOfWalls:      c.Board.Walls,
		EndTime:            c.Game.EndTime,
		MiningPeriod:       c.Mining.Period,
		ActionInterval:     c.Game.ActionInterval,
		ResourceRange:      c.Mining.ResourceRange,
		ResourceNumbers:    append([]int(nil), c.Mining.ResourceNumbers...),
		CommonDivisor:      level.CommonDivisor,
		Seed:               level.Seed,
	}
}

// Level returns the level with the given ID.
func (c FactoryConfig) Level(id string) (LevelConfig, bool) {
	for _, l := range c.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return LevelConfig{}, false
}

// Validate checks that every level yields a valid engine configuration.
func (c FactoryConfig) Validate() error {
	if len(c.Levels) == 0 {
		return errors.New("config: no levels defined")
	}
	seen := make(map[string]bool, len(c.Levels))
	for _, l := range c.Levels {
		if l.ID == "" {
			return errors.New("config: level without id")
		}
		if seen[l.ID] {
			return fmt.Errorf("config: duplicate level %q", l.ID)
		}
		seen[l.ID] = true
		if err := c.Engine(l).Validate(); err != nil {
			return fmt.Errorf("config: level %q: %w", l.ID, err)
		}
	}
	return nil
}
