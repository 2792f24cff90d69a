// Package highscore persists the single best score in a small obfuscated
// file next to the player's home directory.
//
// The file holds exactly 8 bytes: the score as a big-endian uint64 with
// byte i shifted by 5*i. Anything else on disk reads as "no score".
package highscore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPath is where the high score lives unless configured otherwise.
const DefaultPath = "~/.tetris-highscore"

// Size is the encoded length in bytes.
const Size = 8

const shift = 5

// Encode returns the on-disk form of score.
func Encode(score uint64) []byte {
	buf := make([]byte, Size)
	binary.BigEndian.PutUint64(buf, score)
	for i := range buf {
		buf[i] += byte(shift * i)
	}
	return buf
}

// Decode reverses Encode. Input of the wrong length decodes to 0.
func Decode(data []byte) uint64 {
	if len(data) != Size {
		return 0
	}
	buf := make([]byte, Size)
	for i, b := range data {
		buf[i] = b - byte(shift*i)
	}
	return binary.BigEndian.Uint64(buf)
}

// Load reads the high score at path. A missing or malformed file is not
// an error and yields 0; other read failures return 0 and the error so
// the caller can log it.
func Load(path string) (int, error) {
	path, err := expandHome(path)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("highscore: cannot read %s: %w", path, err)
	}
	return clamp(Decode(data)), nil
}

// Save writes score to path, creating parent directories as needed.
func Save(path string, score int) error {
	if score < 0 {
		score = 0
	}
	path, err := expandHome(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, Encode(uint64(score)), 0o644); err != nil {
		return fmt.Errorf("highscore: cannot write %s: %w", path, err)
	}
	return nil
}

// clamp keeps a decoded value inside the int range.
func clamp(v uint64) int {
	const maxInt = int(^uint(0) >> 1)
	if v > uint64(maxInt) {
		return maxInt
	}
	return int(v)
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("highscore: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
