// Package tui hosts the game in a terminal: Bubble Tea for the display
// and keyboard, Wish for SSH sessions.
//
// The engine loop runs on its own goroutine and owns all game state.
// The Bubble Tea side only sends actions into a ChannelInput and reads
// snapshots out of a FrameBuffer.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// frameMsg carries a new snapshot from a session's engine loop.
type frameMsg struct {
	src  *Session
	snap tetris.Snapshot
}

// stoppedMsg reports that a session's engine loop has returned.
type stoppedMsg struct {
	src *Session
}

var helpToggle = key.NewBinding(
	key.WithKeys("?"),
	key.WithHelp("?", "more keys"),
)

// Model is the Bubble Tea model for one game.
type Model struct {
	src       *Session
	keyMapper *KeyMapper

	screen   *core.Screen
	help     help.Model
	useColor bool

	snap     tetris.Snapshot
	hasFrame bool
	width    int
	height   int
	quitting bool

	// embedded models report Done instead of quitting the program.
	embedded bool
}

// NewModel creates the view over a running session.
func NewModel(s *Session) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		src:       s,
		keyMapper: NewKeyMapper(s.keys),
		screen:    core.NewScreen(FrameWidth, FrameHeight),
		help:      h,
		useColor:  s.useColor,
	}
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return m.waitForFrame()
}

// waitForFrame returns a command that waits for the next snapshot or
// for the engine loop to stop.
func (m Model) waitForFrame() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		select {
		case snap := <-src.frames.Frames():
			return frameMsg{src: src, snap: snap}
		case <-src.stopped:
			return stoppedMsg{src: src}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	// Messages from an earlier session on the same program are stale.
	case frameMsg:
		if msg.src != m.src {
			return m, nil
		}
		m.snap = msg.snap
		m.hasFrame = true
		return m, m.waitForFrame()

	case stoppedMsg:
		if msg.src != m.src {
			return m, nil
		}
		return m.quit()
	}

	return m, nil
}

// handleKey forwards mapped keys to the engine.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, helpToggle) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keyMapper.MapKey(msg)
	if action == core.ActionNone {
		return m, nil
	}
	m.src.input.Send(action)

	if action == core.ActionExit {
		return m.quit()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting || !m.hasFrame {
		return ""
	}

	DrawGame(m.screen, m.snap, m.useColor)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

// Snapshot returns the last frame received.
func (m Model) Snapshot() tetris.Snapshot {
	return m.snap
}

// Done returns true once the player has left the game or the engine
// loop has stopped.
func (m Model) Done() bool {
	return m.quitting
}
