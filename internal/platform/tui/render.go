package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("129")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Layout of a frame, in terminal cells.
const (
	cellWidth   = 2
	wellWidth   = tetris.Width*cellWidth + 2
	wellHeight  = tetris.Height + 2
	panelX      = wellWidth + 2
	FrameWidth  = panelX + 18
	FrameHeight = wellHeight
)

// Glyph halves for one board cell.
const (
	frozenGlyph = '█'
	activeGlyph = '▓'
)

// DrawGame draws snap into s: the bordered well on the left, the
// preview and counters on the right. Without color the active piece
// uses a shaded glyph so it stays distinguishable from the stack.
func DrawGame(s *core.Screen, snap tetris.Snapshot, useColor bool) {
	s.Clear()
	s.DrawBox(core.NewRect(0, 0, wellWidth, wellHeight))

	for y := 0; y < tetris.Height; y++ {
		for x := 0; x < tetris.Width; x++ {
			cell, active := snap.Cell(x, y)
			if !cell.Filled {
				continue
			}
			glyph := frozenGlyph
			if active && !useColor {
				glyph = activeGlyph
			}
			drawCell(s, 1+x*cellWidth, 1+y, glyph, tint(cell.Color, useColor))
		}
	}

	drawPanel(s, snap, useColor)

	switch {
	case snap.GameOver():
		drawOverlay(s, "GAME OVER", "r: restart")
	case snap.Paused:
		drawOverlay(s, "PAUSED", "p: resume")
	}
}

func drawCell(s *core.Screen, x, y int, glyph rune, c core.Color) {
	for i := 0; i < cellWidth; i++ {
		s.SetColored(x+i, y, glyph, c)
	}
}

func tint(c core.Color, useColor bool) core.Color {
	if !useColor {
		return core.ColorDefault
	}
	return c
}

func drawPanel(s *core.Screen, snap tetris.Snapshot, useColor bool) {
	s.DrawText(panelX, 1, "NEXT")
	shape := tetris.ShapeOf(snap.Next, 0)
	for y := 0; y < shape.Size; y++ {
		for x := 0; x < shape.Size; x++ {
			if shape.Filled(x, y) {
				drawCell(s, panelX+x*cellWidth, 2+y, frozenGlyph, tint(snap.Next.Color(), useColor))
			}
		}
	}

	stats := []struct {
		label string
		value string
	}{
		{"HIGH", fmt.Sprint(snap.HighScore)},
		{"SCORE", fmt.Sprint(snap.Score)},
		{"LEVEL", fmt.Sprint(snap.Level)},
		{"LINES", fmt.Sprint(snap.Lines)},
		{"DELAY", fmt.Sprintf("%dms", snap.Delay.Milliseconds())},
	}
	for i, st := range stats {
		s.DrawTextColored(panelX, 7+i, st.label, tint(core.ColorGray, useColor))
		s.DrawText(panelX+6, 7+i, st.value)
	}
}

// drawOverlay prints two centered lines across the middle of the well.
func drawOverlay(s *core.Screen, title, hint string) {
	mid := wellHeight / 2
	for _, line := range []struct {
		y    int
		text string
	}{{mid - 1, title}, {mid, hint}} {
		x := 1 + (wellWidth-2-len(line.text))/2
		s.DrawText(x, line.y, line.text)
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
