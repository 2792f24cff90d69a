// Package config provides YAML-based configuration for timings, key
// bindings and file locations.
package config

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/highscore"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Config is the complete user configuration.
type Config struct {
	Timing TimingConfig `yaml:"timing"`
	Keys   KeysConfig   `yaml:"keys"`
	Paths  PathsConfig  `yaml:"paths"`
}

// TimingConfig holds the engine intervals in milliseconds.
type TimingConfig struct {
	LockDelayMS        int `yaml:"lock_delay_ms"`
	SoftDropIntervalMS int `yaml:"soft_drop_interval_ms"`
	SoftDropDurationMS int `yaml:"soft_drop_duration_ms"`
	PollIntervalMS     int `yaml:"poll_interval_ms"`
	LockResets         int `yaml:"lock_resets"`
}

// KeysConfig lists the keys bound to each input event, in Bubble Tea
// key-string form ("left", "ctrl+c", " " for space).
type KeysConfig struct {
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	RotateCW  []string `yaml:"rotate_cw"`
	RotateCCW []string `yaml:"rotate_ccw"`
	SoftDrop  []string `yaml:"soft_drop"`
	HardDrop  []string `yaml:"hard_drop"`
	Pause     []string `yaml:"pause"`
	Exit      []string `yaml:"exit"`
	Restart   []string `yaml:"restart"`
}

// PathsConfig locates the files the game persists to.
type PathsConfig struct {
	HighScore string `yaml:"highscore"`
	Database  string `yaml:"database"`
}

// Timing converts the configured intervals for the engine.
// Non-positive values fall back to the engine defaults.
func (c TimingConfig) Timing() tetris.Timing {
	return tetris.Timing{
		LockDelay:        ms(c.LockDelayMS),
		SoftDropInterval: ms(c.SoftDropIntervalMS),
		SoftDropDuration: ms(c.SoftDropDurationMS),
		PollInterval:     ms(c.PollIntervalMS),
		LockResets:       c.LockResets,
	}.Normalize()
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Normalize fills empty or invalid fields from Default.
func (c Config) Normalize() Config {
	d := Default()

	t := &c.Timing
	if t.LockDelayMS <= 0 {
		t.LockDelayMS = d.Timing.LockDelayMS
	}
	if t.SoftDropIntervalMS <= 0 {
		t.SoftDropIntervalMS = d.Timing.SoftDropIntervalMS
	}
	if t.SoftDropDurationMS <= 0 {
		t.SoftDropDurationMS = d.Timing.SoftDropDurationMS
	}
	if t.PollIntervalMS <= 0 {
		t.PollIntervalMS = d.Timing.PollIntervalMS
	}
	if t.LockResets < 0 {
		t.LockResets = d.Timing.LockResets
	}

	k := &c.Keys
	fill(&k.Left, d.Keys.Left)
	fill(&k.Right, d.Keys.Right)
	fill(&k.RotateCW, d.Keys.RotateCW)
	fill(&k.RotateCCW, d.Keys.RotateCCW)
	fill(&k.SoftDrop, d.Keys.SoftDrop)
	fill(&k.HardDrop, d.Keys.HardDrop)
	fill(&k.Pause, d.Keys.Pause)
	fill(&k.Exit, d.Keys.Exit)
	fill(&k.Restart, d.Keys.Restart)

	if c.Paths.HighScore == "" {
		c.Paths.HighScore = highscore.DefaultPath
	}
	if c.Paths.Database == "" {
		c.Paths.Database = storage.DefaultPath
	}
	return c
}

func fill(dst *[]string, def []string) {
	if len(*dst) == 0 {
		*dst = append([]string(nil), def...)
	}
}
