package tetris

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// InputSource delivers input events. Poll waits at most timeout and
// reports false if nothing arrived.
type InputSource interface {
	Poll(timeout time.Duration) (core.Action, bool)
}

// Renderer receives a frame whenever the visible state changes.
type Renderer interface {
	Render(Snapshot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Snapshot)

// Render calls f(s).
func (f RendererFunc) Render(s Snapshot) { f(s) }

// Runner drives a Game: each tick it polls input with a short timeout
// until the tick's interval has elapsed, then runs the end-of-tick step.
// It is the only goroutine that touches the Game.
type Runner struct {
	game  *Game
	input InputSource
	view  Renderer
	clock core.Clock

	onGameOver func(Result)
	onExit     func(Result)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock overrides the wall clock.
func WithClock(c core.Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

// OnGameOver registers a hook called once each time a game ends.
func OnGameOver(fn func(Result)) RunnerOption {
	return func(r *Runner) { r.onGameOver = fn }
}

// OnExit registers a hook called when Run returns, for any reason.
// Persistent state such as the high score is flushed from here.
func OnExit(fn func(Result)) RunnerOption {
	return func(r *Runner) { r.onExit = fn }
}

// NewRunner creates a runner for game.
func NewRunner(game *Game, input InputSource, view Renderer, opts ...RunnerOption) *Runner {
	r := &Runner{
		game:  game,
		input: input,
		view:  view,
		clock: core.NewClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays until the player exits (nil) or ctx is done (ctx.Err()).
func (r *Runner) Run(ctx context.Context) error {
	defer func() {
		if r.onExit != nil {
			r.onExit(r.game.Result(r.clock.Now()))
		}
	}()

	reported := false
	for {
		r.view.Render(r.game.Snapshot())
		r.game.BeginTick(r.clock.Now())

	poll:
		for !r.game.TickDue(r.clock.Now()) {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, ok := r.input.Poll(r.game.timing.PollInterval)
			if !ok {
				continue
			}
			out := r.game.Handle(a, r.clock.Now())
			switch {
			case out.Exit:
				return nil
			case out.EndTick:
				break poll
			case out.Changed:
				if r.game.Phase() != PhaseGameOver {
					reported = false
				}
				r.view.Render(r.game.Snapshot())
			}
		}

		r.game.EndTick(r.clock.Now())

		if r.game.Phase() == PhaseGameOver && !reported {
			reported = true
			if r.onGameOver != nil {
				r.onGameOver(r.game.Result(r.clock.Now()))
			}
		}
	}
}
