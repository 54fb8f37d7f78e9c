package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frame callbacks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FixedDT returns the nominal frame duration in seconds for the tick rate.
func (c RuntimeConfig) FixedDT() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Kills in the current level
	GameOver bool   // The level was lost and waits for a retry
	Paused   bool   // Real-time simulation is suspended (pause, perk choice, summaries)
	Phase    string // Human-readable phase name for the HUD
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
