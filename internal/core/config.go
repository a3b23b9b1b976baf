package core

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 30

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second
	Seed     *int64 // Overrides the level seed when set
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 30 ticks
// per second, so a 9000-tick game lasts five minutes.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
