package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW         int   // Screen width in characters
	ScreenH         int   // Screen height in characters
	Seed            int64 // RNG seed for deterministic piece order
	UseColor        bool  // Render pieces in color
	InverseRotation bool  // Swap the clockwise and counter-clockwise keys
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		Seed:     0, // 0 means use current time in platform layer
		UseColor: true,
	}
}
