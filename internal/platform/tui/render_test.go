package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func testSnapshot() tetris.Snapshot {
	var board tetris.Board
	board[tetris.Height-1][0] = tetris.Cell{Filled: true, Color: core.ColorRed}
	return tetris.Snapshot{
		Board:     board,
		Active:    tetris.Piece{Kind: tetris.KindO, X: 3, Y: 0},
		HasActive: true,
		Next:      tetris.KindI,
		Phase:     tetris.PhaseFalling,
		Score:     1200,
		HighScore: 5000,
		Level:     2,
		Lines:     11,
		Delay:     700 * time.Millisecond,
	}
}

func TestDrawGameNoColorGlyphs(t *testing.T) {
	s := core.NewScreen(FrameWidth, FrameHeight)

	DrawGame(s, testSnapshot(), false)

	// Frozen cell at board (0, 21) -> screen columns 1-2, row 22.
	assert.Equal(t, '█', s.Get(1, tetris.Height))
	assert.Equal(t, '█', s.Get(2, tetris.Height))

	// Active O at board (3..4, 0..1) -> screen columns 7-10, rows 1-2.
	for _, x := range []int{7, 8, 9, 10} {
		assert.Equal(t, '▓', s.Get(x, 1), "x=%d", x)
		assert.Equal(t, core.ColorDefault, s.GetCell(x, 1).Color)
	}
	assert.Equal(t, ' ', s.Get(11, 1))
}

func TestDrawGameColor(t *testing.T) {
	s := core.NewScreen(FrameWidth, FrameHeight)

	DrawGame(s, testSnapshot(), true)

	assert.Equal(t, core.ColorRed, s.GetCell(1, tetris.Height).Color)
	assert.Equal(t, '█', s.Get(7, 1), "active piece uses the solid glyph in color")
	assert.Equal(t, core.ColorYellow, s.GetCell(7, 1).Color)
}

func TestDrawGameBorder(t *testing.T) {
	s := core.NewScreen(FrameWidth, FrameHeight)

	DrawGame(s, testSnapshot(), false)

	assert.Equal(t, '┌', s.Get(0, 0))
	assert.Equal(t, '┐', s.Get(wellWidth-1, 0))
	assert.Equal(t, '└', s.Get(0, wellHeight-1))
	assert.Equal(t, '│', s.Get(0, 5))
}

func TestDrawGamePanel(t *testing.T) {
	s := core.NewScreen(FrameWidth, FrameHeight)

	DrawGame(s, testSnapshot(), false)
	text := s.String()

	assert.Contains(t, text, "NEXT")
	assert.Contains(t, text, "HIGH  5000")
	assert.Contains(t, text, "SCORE 1200")
	assert.Contains(t, text, "LEVEL 2")
	assert.Contains(t, text, "LINES 11")
	assert.Contains(t, text, "DELAY 700ms")
	// I preview: row 1 of its mask, four cells wide.
	assert.Contains(t, s.Row(3), strings.Repeat("█", 8))
}

func TestDrawGameOverlays(t *testing.T) {
	s := core.NewScreen(FrameWidth, FrameHeight)

	snap := testSnapshot()
	snap.Paused = true
	DrawGame(s, snap, false)
	assert.Contains(t, s.String(), "PAUSED")

	snap.Paused = false
	snap.Phase = tetris.PhaseGameOver
	snap.HasActive = false
	DrawGame(s, snap, false)
	assert.Contains(t, s.String(), "GAME OVER")
	assert.NotContains(t, s.String(), "PAUSED")
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cd")

	got := RenderScreen(s)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ab")
	assert.Contains(t, lines[1], "cd")
}
