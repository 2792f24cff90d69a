package tui

import (
	"context"
	"errors"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// SessionOptions configure a Session.
type SessionOptions struct {
	Keys       KeyMap
	UseColor   bool
	Clock      core.Clock         // Nil means the wall clock
	OnGameOver func(tetris.Result) // Called once per finished game
	OnExit     func(tetris.Result) // Called when the engine loop returns
}

// Session ties one engine loop to one Bubble Tea model.
type Session struct {
	runner   *tetris.Runner
	input    *ChannelInput
	frames   *FrameBuffer
	keys     KeyMap
	useColor bool

	stopped chan struct{}
	err     error
}

// NewSession wires game to a fresh input queue and frame mailbox.
func NewSession(game *tetris.Game, opts SessionOptions) *Session {
	s := &Session{
		input:    NewChannelInput(defaultInputBuffer),
		frames:   NewFrameBuffer(),
		keys:     opts.Keys,
		useColor: opts.UseColor,
		stopped:  make(chan struct{}),
	}

	var runOpts []tetris.RunnerOption
	if opts.Clock != nil {
		runOpts = append(runOpts, tetris.WithClock(opts.Clock))
	}
	if opts.OnGameOver != nil {
		runOpts = append(runOpts, tetris.OnGameOver(opts.OnGameOver))
	}
	if opts.OnExit != nil {
		runOpts = append(runOpts, tetris.OnExit(opts.OnExit))
	}
	s.runner = tetris.NewRunner(game, s.input, s.frames, runOpts...)
	return s
}

// Start runs the engine loop on its own goroutine until the player
// exits or ctx is done.
func (s *Session) Start(ctx context.Context) {
	go func() {
		defer close(s.stopped)
		s.err = s.runner.Run(ctx)
	}()
}

// Wait blocks until the engine loop has returned and reports its error.
// Cancellation is not an error.
func (s *Session) Wait() error {
	<-s.stopped
	if errors.Is(s.err, context.Canceled) {
		return nil
	}
	return s.err
}

// Model returns a Bubble Tea model over the session that quits the
// program when the game ends.
func (s *Session) Model() Model {
	return NewModel(s)
}

// EmbeddedModel returns a model for use inside a larger program. It
// reports Done instead of quitting.
func (s *Session) EmbeddedModel() Model {
	m := NewModel(s)
	m.embedded = true
	return m
}

// NewGame creates an engine seeded from cfg. Seed 0 means time based.
func NewGame(timing tetris.Timing, cfg core.RuntimeConfig, highScore int) *tetris.Game {
	now := time.Now()
	seed := cfg.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	return tetris.New(timing, rand.New(rand.NewSource(seed)), highScore, now)
}

// Run plays one local session on the current terminal. It returns when
// the player quits; the OnExit hook has run by then.
func Run(ctx context.Context, game *tetris.Game, opts SessionOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := NewSession(game, opts)
	s.Start(ctx)

	p := tea.NewProgram(
		s.Model(),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	cancel()
	if waitErr := s.Wait(); waitErr != nil {
		return waitErr
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
