package tetris

import (
	"fmt"
	"math"
	"time"
)

// Level bounds. MaxLevel's threshold is unreachable, so it acts as a cap.
const (
	MinLevel = 1
	MaxLevel = 29
)

// lineRewards maps rows cleared by one lock to base points.
var lineRewards = [maxClearPerLock + 1]int{0, 100, 300, 500, 800}

// levelThresholds[level] is the cumulative line count that advances
// past that level.
var levelThresholds = [MaxLevel + 1]int{
	1: 10, 2: 30, 3: 70, 4: 120, 5: 180, 6: 250, 7: 330, 8: 420, 9: 520,
	10: 620, 11: 720, 12: 820, 13: 920, 14: 1020, 15: 1120, 16: 1230,
	17: 1350, 18: 1480, 19: 1620, 20: 1770, 21: 1930, 22: 2100, 23: 2280,
	24: 2470, 25: 2670, 26: 2870, 27: 3070, 28: 3270, 29: math.MaxInt,
}

// Fall delay curve: BaseFallDelay at level 1, divided by fallDecay for
// every level above it.
const (
	BaseFallDelay = 800 * time.Millisecond
	fallDecay     = 1.142
)

// LineReward returns the base points for clearing rows at once.
func LineReward(rows int) int {
	if rows < 0 || rows > maxClearPerLock {
		panic(fmt.Sprintf("tetris: no reward for %d rows", rows))
	}
	return lineRewards[rows]
}

// LevelThreshold returns the cumulative lines needed to leave level.
func LevelThreshold(level int) int {
	if level < MinLevel || level > MaxLevel {
		panic(fmt.Sprintf("tetris: invalid level %d", level))
	}
	return levelThresholds[level]
}

// FallDelay returns the gravity interval for a level:
// 800ms * 1.142^(1-level).
func FallDelay(level int) time.Duration {
	if level < MinLevel || level > MaxLevel {
		panic(fmt.Sprintf("tetris: invalid level %d", level))
	}
	ms := float64(BaseFallDelay/time.Millisecond) * math.Pow(fallDecay, float64(1-level))
	return time.Duration(ms) * time.Millisecond
}

// Stats holds the running score of one game.
type Stats struct {
	Score     int
	Lines     int
	Level     int
	HighScore int
	Delay     time.Duration
}

// NewStats returns level-1 stats carrying over a previous high score.
func NewStats(highScore int) Stats {
	return Stats{
		Level:     MinLevel,
		HighScore: highScore,
		Delay:     FallDelay(MinLevel),
	}
}

// AddScore credits a lock that cleared rows: points are scaled by the
// level before any level-up from this clear, then the level advances
// as many times as the new line total allows. Zero rows changes nothing.
// It returns the number of levels gained.
func (s *Stats) AddScore(rows int) int {
	if rows == 0 {
		return 0
	}
	s.Score += s.Level * LineReward(rows)
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	s.Lines += rows
	return s.promote()
}

// promote raises the level while the line total meets the current
// level's threshold. One clear can cross several thresholds.
func (s *Stats) promote() int {
	gained := 0
	for s.Lines >= LevelThreshold(s.Level) {
		s.Level++
		s.Delay = FallDelay(s.Level)
		gained++
	}
	return gained
}
