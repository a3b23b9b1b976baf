// Package levels resolves playable factory levels from configuration.
// This package depends on core and config; core depends on neither.
package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-factory/internal/config"
	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

// Level is a playable level with its fully resolved engine configuration.
type Level struct {
	ID      string
	Name    string
	Divisor int
	Seed    int64
	Engine  core.Config
}

// Title returns a one-line description for menus.
func (l Level) Title() string {
	return fmt.Sprintf("%s  %s  (score multiples of %d)", l.ID, l.Name, l.Divisor)
}

// WithSeed returns the level played with seed instead of its own. Any
// value, zero included, is a valid seed.
func (l Level) WithSeed(seed int64) Level {
	l.Seed = seed
	l.Engine.Seed = seed
	return l
}

// NewManager starts a game on this level.
func (l Level) NewManager(player core.Player) (*core.Manager, error) {
	return core.NewManager(l.Engine, player)
}

// Set is the ordered list of levels from one configuration.
type Set struct {
	levels []Level
}

// Load reads the configuration (see config.LoadFactory) and resolves its levels.
func Load(customPath string) (Set, error) {
	cfg, err := config.LoadFactory(customPath)
	if err != nil {
		return Set{}, err
	}
	return FromConfig(cfg), nil
}

// FromConfig resolves every level in cfg, keeping file order.
func FromConfig(cfg config.FactoryConfig) Set {
	s := Set{levels: make([]Level, 0, len(cfg.Levels))}
	for _, lc := range cfg.Levels {
		s.levels = append(s.levels, Level{
			ID:      lc.ID,
			Name:    lc.Name,
			Divisor: lc.CommonDivisor,
			Seed:    lc.Seed,
			Engine:  cfg.Engine(lc),
		})
	}
	return s
}

// Len returns the number of levels.
func (s Set) Len() int { return len(s.levels) }

// At returns the i-th level.
func (s Set) At(i int) Level { return s.levels[i] }

// IDs returns level IDs in order.
func (s Set) IDs() []string {
	ids := make([]string, len(s.levels))
	for i, l := range s.levels {
		ids[i] = l.ID
	}
	return ids
}

// Titles returns menu titles in order.
func (s Set) Titles() []string {
	titles := make([]string, len(s.levels))
	for i, l := range s.levels {
		titles[i] = l.Title()
	}
	return titles
}

// Get looks a level up by ID. An empty ID selects the first level.
func (s Set) Get(id string) (Level, error) {
	if len(s.levels) == 0 {
		return Level{}, fmt.Errorf("levels: no levels available")
	}
	if id == "" {
		return s.levels[0], nil
	}
	for _, l := range s.levels {
		if l.ID == id {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("levels: unknown level %q", id)
}

// Index returns the position of the level with the given ID, or -1.
func (s Set) Index(id string) int {
	for i, l := range s.levels {
		if l.ID == id {
			return i
		}
	}
	return -1
}
