package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-tetris/internal/highscore"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timing: TimingConfig{
			LockDelayMS:        500,
			SoftDropIntervalMS: 100,
			SoftDropDurationMS: 100,
			PollIntervalMS:     1,
			LockResets:         15,
		},
		Keys: KeysConfig{
			Left:      []string{"left", "h"},
			Right:     []string{"right", "l"},
			RotateCW:  []string{"up", "x", "k"},
			RotateCCW: []string{"z"},
			SoftDrop:  []string{"down", "j"},
			HardDrop:  []string{" "},
			Pause:     []string{"p"},
			Exit:      []string{"esc", "q", "ctrl+c"},
			Restart:   []string{"r", "enter"},
		},
		Paths: PathsConfig{
			HighScore: highscore.DefaultPath,
			Database:  storage.DefaultPath,
		},
	}
}
