package core

import (
	"errors"
	"fmt"
)

// Config holds the immutable parameters of one game.
// It is injected into NewManager; nothing in the engine reads globals.
type Config struct {
	BoardWidth         int
	BoardHeight        int
	GoalSize           int // collection center edge length
	ConveyorBufferSize int // slots per conveyor, also the capacity of empty combiner inputs
	NumberOfWalls      int // wall placement attempts
	EndTime            int
	MiningPeriod       int
	ActionInterval     int // the player is polled every ActionInterval ticks
	ResourceRange      int
	ResourceNumbers    []int
	CommonDivisor      int
	Seed               int64
}

// DefaultConfig returns the standard board with common divisor 1 and seed 0.
func DefaultConfig() Config {
	return Config{
		BoardWidth:         62,
		BoardHeight:        36,
		GoalSize:           4,
		ConveyorBufferSize: 10,
		NumberOfWalls:      100,
		EndTime:            9000,
		MiningPeriod:       100,
		ActionInterval:     3,
		ResourceRange:      30,
		ResourceNumbers:    []int{1, 2, 3, 5, 7, 11},
		CommonDivisor:      1,
		Seed:               0,
	}
}

// Validate reports the first invalid field, if any.
func (c Config) Validate() error {
	switch {
	case c.BoardWidth <= 0 || c.BoardHeight <= 0:
		return fmt.Errorf("core: board must be positive, got %dx%d", c.BoardWidth, c.BoardHeight)
	case c.GoalSize <= 0:
		return fmt.Errorf("core: goal size must be positive, got %d", c.GoalSize)
	case c.GoalSize > c.BoardWidth || c.GoalSize > c.BoardHeight:
		return fmt.Errorf("core: goal size %d does not fit a %dx%d board", c.GoalSize, c.BoardWidth, c.BoardHeight)
	case c.ConveyorBufferSize < 3:
		// the conveyor protocol inspects slots 0..2
		return fmt.Errorf("core: conveyor buffer size must be at least 3, got %d", c.ConveyorBufferSize)
	case c.NumberOfWalls < 0:
		return fmt.Errorf("core: number of walls must not be negative, got %d", c.NumberOfWalls)
	case c.EndTime < 0:
		return fmt.Errorf("core: end time must not be negative, got %d", c.EndTime)
	case c.MiningPeriod <= 0:
		return fmt.Errorf("core: mining period must be positive, got %d", c.MiningPeriod)
	case c.ActionInterval <= 0:
		return fmt.Errorf("core: action interval must be positive, got %d", c.ActionInterval)
	case c.ResourceRange <= 0:
		return fmt.Errorf("core: resource range must be positive, got %d", c.ResourceRange)
	case c.CommonDivisor <= 0:
		return fmt.Errorf("core: common divisor must be positive, got %d", c.CommonDivisor)
	}
	if len(c.ResourceNumbers) == 0 {
		return errors.New("core: resource numbers must not be empty")
	}
	for _, n := range c.ResourceNumbers {
		if n <= 0 {
			return fmt.Errorf("core: resource number %d is not positive", n)
		}
	}
	return nil
}

// CollectorTopLeft returns the top-left slot of the centered collection center.
func (c Config) CollectorTopLeft() Position {
	return P(c.BoardHeight/2-c.GoalSize/2, c.BoardWidth/2-c.GoalSize/2)
}

func (c Config) isResourceNumber(n int) bool {
	for _, v := range c.ResourceNumbers {
		if v == n {
			return true
		}
	}
	return false
}
