package tetris

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLineReward(t *testing.T) {
	tests := []struct {
		rows, points int
	}{
		{0, 0},
		{1, 100},
		{2, 300},
		{3, 500},
		{4, 800},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.points, LineReward(tc.rows), "rows %d", tc.rows)
	}

	assert.Panics(t, func() { LineReward(5) })
	assert.Panics(t, func() { LineReward(-1) })
}

func TestAddScoreScalesByLevel(t *testing.T) {
	s := NewStats(0)
	s.Level = 3
	s.Lines = 35
	s.Score = 1000

	s.AddScore(2)

	assert.Equal(t, 1900, s.Score, "3 * 300 added")
	assert.Equal(t, 37, s.Lines)
	assert.Equal(t, 3, s.Level)
}

func TestAddScoreZeroRowsChangesNothing(t *testing.T) {
	s := NewStats(500)
	s.Level = 4
	s.Lines = 119
	s.Delay = 123 * time.Millisecond
	before := s

	gained := s.AddScore(0)

	assert.Equal(t, 0, gained)
	assert.Equal(t, before, s)
}

func TestAddScoreUsesLevelBeforeLevelUp(t *testing.T) {
	s := NewStats(0)
	s.Lines = 8

	gained := s.AddScore(2)

	assert.Equal(t, 300, s.Score, "scored at level 1")
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, FallDelay(2), s.Delay)
}

func TestPromoteCrossesSeveralThresholds(t *testing.T) {
	s := NewStats(0)
	s.Lines = 35

	gained := s.promote()

	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, FallDelay(3), s.Delay)
}

func TestAddScoreTracksHighScore(t *testing.T) {
	s := NewStats(250)

	s.AddScore(1)
	assert.Equal(t, 250, s.HighScore, "below previous best")

	s.AddScore(1)
	assert.Equal(t, 200, s.Score)
	s.AddScore(1)
	assert.Equal(t, 300, s.HighScore)
}

func TestLevelCap(t *testing.T) {
	s := NewStats(0)
	s.Level = 28
	s.Lines = 3269

	s.AddScore(4)

	assert.Equal(t, MaxLevel, s.Level)

	s.Lines = 1_000_000
	s.AddScore(4)
	assert.Equal(t, MaxLevel, s.Level, "level 29 is never left")
}

func TestLevelThreshold(t *testing.T) {
	assert.Equal(t, 10, LevelThreshold(1))
	assert.Equal(t, 30, LevelThreshold(2))
	assert.Equal(t, 3270, LevelThreshold(28))
	assert.Equal(t, math.MaxInt, LevelThreshold(29))

	assert.Panics(t, func() { LevelThreshold(0) })
	assert.Panics(t, func() { LevelThreshold(30) })
}

func TestFallDelay(t *testing.T) {
	assert.Equal(t, 800*time.Millisecond, FallDelay(1))
	assert.Equal(t, 700*time.Millisecond, FallDelay(2))
	assert.Equal(t, 613*time.Millisecond, FallDelay(3))

	for level := MinLevel + 1; level <= MaxLevel; level++ {
		assert.Less(t, FallDelay(level), FallDelay(level-1), "level %d", level)
	}
	assert.Panics(t, func() { FallDelay(0) })
}
