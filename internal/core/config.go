package core

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// FrameDelta overrides the per-step delta in seconds when positive.
	// The tick rate still paces the terminal loop.
	FrameDelta float64
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

// Delta returns the fixed frame delta in seconds: FrameDelta when set,
// otherwise one tick at the configured rate.
func (c RuntimeConfig) Delta() float64 {
	if c.FrameDelta > 0 && IsFinite(c.FrameDelta) {
		return c.FrameDelta
	}
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a scene.
type GameState struct {
	Score    int  // Droplets caught
	Missed   int  // Droplets that reached the bottom uncaught
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Muted    bool // Whether audio is muted
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
