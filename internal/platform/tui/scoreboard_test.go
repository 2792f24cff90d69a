package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

type fakeLoader struct {
	top    []storage.Run
	recent []storage.Run
	err    error
}

func (f fakeLoader) TopRuns(int) ([]storage.Run, error)    { return f.top, f.err }
func (f fakeLoader) RecentRuns(int) ([]storage.Run, error) { return f.recent, f.err }

func TestRunRows(t *testing.T) {
	created := time.Date(2024, 3, 9, 18, 5, 0, 0, time.UTC)
	rows := RunRows([]storage.Run{
		{Score: 900, Lines: 12, Level: 2, Duration: 125 * time.Second, Player: "ann", CreatedAt: created},
		{Score: 100, Duration: 9 * time.Second},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"#1", "900", "12", "2", "2:05", "ann", "Mar 09 18:05"}, []string(rows[0]))
	assert.Equal(t, "#2", rows[1][0])
	assert.Equal(t, "0:09", rows[1][4])
	assert.Equal(t, "-", rows[1][5])
}

func TestScoreboardSwitchesView(t *testing.T) {
	loader := fakeLoader{
		top:    []storage.Run{{Score: 500}, {Score: 300}},
		recent: []storage.Run{{Score: 300}},
	}
	m := NewScoreboardModel(loader, 100, 30)
	assert.Len(t, m.runs, 2)
	assert.Contains(t, m.View(), "HIGH SCORES")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)

	assert.Equal(t, ScoreViewRecent, m.view)
	assert.Len(t, m.runs, 1)
	assert.Contains(t, m.View(), "RECENT GAMES")
}

func TestScoreboardEmptyAndErrors(t *testing.T) {
	empty := NewScoreboardModel(nil, 80, 24)
	assert.Contains(t, empty.View(), "No games recorded yet.")

	failing := NewScoreboardModel(fakeLoader{err: errors.New("disk on fire")}, 80, 24)
	assert.Contains(t, failing.View(), "disk on fire")
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)

	next, cmd := m.Update(runeKey('q'))

	assert.True(t, next.(ScoreboardModel).Closed())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	m.embedded = true
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.True(t, next.(ScoreboardModel).Closed())
	assert.Nil(t, cmd)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "1:01", formatDuration(61*time.Second+400*time.Millisecond))
	assert.Equal(t, "61:40", formatDuration(3700*time.Second))
}
