package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// isolate points HOME and the working directory at empty temp dirs so
// Load only sees what the test writes.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return home, wd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultTetrisYAML)

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
timing:
  lock_delay_ms: 750
keys:
  hard_drop: ["enter"]
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 750, cfg.Timing.LockDelayMS)
	assert.Equal(t, 15, cfg.Timing.LockResets, "missing fields keep defaults")
	assert.Equal(t, []string{"enter"}, cfg.Keys.HardDrop)
	assert.Equal(t, Default().Keys.Left, cfg.Keys.Left)
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "timing: [unclosed")
	cfg, err := Load(bad)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadSearchOrder(t *testing.T) {
	home, wd := isolate(t)
	writeFile(t, filepath.Join(wd, "configs", "tetris.yaml"), "timing:\n  lock_delay_ms: 300\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Timing.LockDelayMS, "local configs directory")

	writeFile(t, filepath.Join(home, ".tetris", "config.yaml"), "timing:\n  lock_delay_ms: 200\n")

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Timing.LockDelayMS, "user config wins over local")
}

func TestLoadSkipsBrokenUserConfig(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".tetris", "config.yaml"), "keys: {left: [")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestNormalize(t *testing.T) {
	cfg := Config{
		Timing: TimingConfig{LockDelayMS: -5, LockResets: -1, PollIntervalMS: 3},
		Keys:   KeysConfig{Pause: []string{"space"}},
	}.Normalize()

	d := Default()
	assert.Equal(t, d.Timing.LockDelayMS, cfg.Timing.LockDelayMS)
	assert.Equal(t, d.Timing.LockResets, cfg.Timing.LockResets)
	assert.Equal(t, 3, cfg.Timing.PollIntervalMS)
	assert.Equal(t, []string{"space"}, cfg.Keys.Pause)
	assert.Equal(t, d.Keys.Exit, cfg.Keys.Exit)
	assert.Equal(t, d.Paths, cfg.Paths)
}

func TestNormalizeDoesNotAliasDefaults(t *testing.T) {
	cfg := Config{}.Normalize()
	cfg.Keys.Left[0] = "a"

	assert.Equal(t, "left", Default().Keys.Left[0])
}

func TestTimingConversion(t *testing.T) {
	got := Default().Timing.Timing()

	assert.Equal(t, tetris.DefaultTiming(), got)

	custom := TimingConfig{LockDelayMS: 1000, SoftDropIntervalMS: 50, LockResets: 0}.Timing()
	assert.Equal(t, time.Second, custom.LockDelay)
	assert.Equal(t, 50*time.Millisecond, custom.SoftDropInterval)
	assert.Equal(t, 100*time.Millisecond, custom.SoftDropDuration)
	assert.Equal(t, 0, custom.LockResets)
}
