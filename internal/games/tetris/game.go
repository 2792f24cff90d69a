package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Phase is the lock-delay state of the game.
type Phase int

const (
	// PhaseFalling: a piece is active and gravity moves it down each tick.
	PhaseFalling Phase = iota
	// PhaseResting: the last gravity step failed; the piece locks when the
	// lock delay runs out unless a move lets it fall again.
	PhaseResting
	// PhaseLocked: the piece was merged into the board and the next one
	// spawns at the end of the current tick.
	PhaseLocked
	// PhaseGameOver: a freshly spawned piece overlapped the stack.
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseResting:
		return "resting"
	case PhaseLocked:
		return "locked"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Timing holds the engine's fixed intervals. Gravity itself comes from
// FallDelay and the current level.
type Timing struct {
	LockDelay        time.Duration // Wait before a resting piece locks
	SoftDropInterval time.Duration // Gravity interval while soft drop is active
	SoftDropDuration time.Duration // Soft drop cancels itself after this long
	PollInterval     time.Duration // Input poll timeout inside a tick
	LockResets       int           // Moves that may re-arm the lock delay
}

// DefaultTiming returns the standard intervals.
func DefaultTiming() Timing {
	return Timing{
		LockDelay:        500 * time.Millisecond,
		SoftDropInterval: 100 * time.Millisecond,
		SoftDropDuration: 100 * time.Millisecond,
		PollInterval:     time.Millisecond,
		LockResets:       15,
	}
}

// Normalize replaces non-positive values with defaults.
func (t Timing) Normalize() Timing {
	d := DefaultTiming()
	if t.LockDelay <= 0 {
		t.LockDelay = d.LockDelay
	}
	if t.SoftDropInterval <= 0 {
		t.SoftDropInterval = d.SoftDropInterval
	}
	if t.SoftDropDuration <= 0 {
		t.SoftDropDuration = d.SoftDropDuration
	}
	if t.PollInterval <= 0 {
		t.PollInterval = d.PollInterval
	}
	if t.LockResets < 0 {
		t.LockResets = d.LockResets
	}
	return t
}

// Outcome tells the loop what an input event did.
type Outcome struct {
	Changed bool // Something visible changed; redraw
	EndTick bool // The current tick is over (hard drop)
	Exit    bool // The player asked to leave
}

// Game is the complete engine state. It is owned by a single loop;
// nothing in it is safe for concurrent use.
type Game struct {
	timing Timing
	bag    *Bag

	board  Board
	active Piece
	next   Kind
	stats  Stats

	phase      Phase
	resetsLeft int
	pieces     int
	lastClear  int

	softDrop   bool
	softDropAt time.Time

	tickStart   time.Time
	activeDelay time.Duration

	paused   bool
	pausedAt time.Time

	startedAt time.Time
}

// New creates a game ready to play at time now. highScore is the best
// score loaded by the persistence layer.
func New(timing Timing, rng Rand, highScore int, now time.Time) *Game {
	g := &Game{
		timing: timing.Normalize(),
		bag:    NewBag(rng),
		stats:  NewStats(highScore),
	}
	g.start(now)
	return g
}

// Reset starts a new game, keeping the high score.
func (g *Game) Reset(now time.Time) {
	g.bag.Reset()
	g.start(now)
}

func (g *Game) start(now time.Time) {
	first, next := g.bag.Opening()

	g.board = Board{}
	g.active = NewPiece(first)
	g.next = next
	g.stats = NewStats(g.stats.HighScore)
	g.phase = PhaseFalling
	g.resetsLeft = 0
	g.pieces = 0
	g.lastClear = 0
	g.softDrop = false
	g.paused = false
	g.startedAt = now
	g.tickStart = now
	g.activeDelay = g.stats.Delay
}

// Phase returns the current lock-delay phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Stats returns the running score.
func (g *Game) Stats() Stats {
	return g.stats
}

// hasActive reports whether a piece is currently in play.
func (g *Game) hasActive() bool {
	return g.phase == PhaseFalling || g.phase == PhaseResting
}

// gravityInterval is the fall interval, honoring soft drop.
func (g *Game) gravityInterval() time.Duration {
	if g.softDrop {
		return g.timing.SoftDropInterval
	}
	return g.stats.Delay
}

// restingInterval is the lock wait, honoring soft drop.
func (g *Game) restingInterval() time.Duration {
	if g.softDrop {
		return g.timing.SoftDropInterval
	}
	return g.timing.LockDelay
}

// BeginTick starts a tick at now and picks its interval. An expired
// soft drop is cancelled here.
func (g *Game) BeginTick(now time.Time) {
	if g.softDrop && now.Sub(g.softDropAt) >= g.timing.SoftDropDuration {
		g.softDrop = false
	}
	g.tickStart = now
	if g.phase == PhaseResting {
		g.activeDelay = g.restingInterval()
	} else {
		g.activeDelay = g.gravityInterval()
	}
}

// TickDue reports whether the current tick's interval has elapsed.
// Ticks never come due while paused or after game over.
func (g *Game) TickDue(now time.Time) bool {
	if g.paused || g.phase == PhaseGameOver {
		return false
	}
	return now.Sub(g.tickStart) >= g.activeDelay
}

// Handle applies one input event at time now.
func (g *Game) Handle(a core.Action, now time.Time) Outcome {
	switch a {
	case core.ActionExit:
		return Outcome{Exit: true}
	case core.ActionPause:
		return g.togglePause(now)
	}

	if g.paused {
		return Outcome{}
	}

	if a == core.ActionRestart {
		if g.phase != PhaseGameOver {
			return Outcome{}
		}
		g.Reset(now)
		return Outcome{Changed: true}
	}

	if !g.hasActive() {
		return Outcome{}
	}

	switch a {
	case core.ActionMoveLeft:
		return g.playerMove(Move(&g.board, &g.active, -1, 0), now)
	case core.ActionMoveRight:
		return g.playerMove(Move(&g.board, &g.active, 1, 0), now)
	case core.ActionRotateCW:
		return g.playerMove(Rotate(&g.board, &g.active, Clockwise), now)
	case core.ActionRotateCCW:
		return g.playerMove(Rotate(&g.board, &g.active, CounterClockwise), now)
	case core.ActionSoftDrop:
		g.softDrop = true
		g.softDropAt = now
		g.activeDelay = g.timing.SoftDropInterval
		return Outcome{}
	case core.ActionHardDrop:
		HardDrop(&g.board, &g.active)
		g.lock()
		return Outcome{Changed: true, EndTick: true}
	}
	return Outcome{}
}

func (g *Game) togglePause(now time.Time) Outcome {
	if g.phase == PhaseGameOver {
		return Outcome{}
	}
	if g.paused {
		g.paused = false
		g.tickStart = g.tickStart.Add(now.Sub(g.pausedAt))
	} else {
		g.paused = true
		g.pausedAt = now
	}
	return Outcome{Changed: true}
}

// playerMove applies lock-delay rules after a translate or rotate.
// A move that frees a resting piece hands the tick back to gravity;
// otherwise each successful move spends one reset to restart the lock
// wait, and once the budget is gone the wait keeps running.
func (g *Game) playerMove(moved bool, now time.Time) Outcome {
	if !moved {
		return Outcome{}
	}
	if g.phase != PhaseResting {
		return Outcome{Changed: true}
	}
	if CanFall(&g.board, g.active) {
		g.activeDelay = g.gravityInterval()
		return Outcome{Changed: true}
	}
	if g.resetsLeft > 0 {
		g.resetsLeft--
		g.tickStart = now
		g.activeDelay = g.restingInterval()
	}
	return Outcome{Changed: true}
}

// EndTick runs the end-of-tick step for the current phase: gravity,
// locking a resting piece, or spawning the next piece.
func (g *Game) EndTick(now time.Time) {
	switch g.phase {
	case PhaseFalling:
		if !Move(&g.board, &g.active, 0, 1) {
			g.phase = PhaseResting
			g.resetsLeft = g.timing.LockResets
		}
	case PhaseResting:
		if Move(&g.board, &g.active, 0, 1) {
			g.phase = PhaseFalling
			g.resetsLeft = 0
		} else {
			g.lock()
		}
	case PhaseLocked:
		g.spawn()
	}
}

// lock merges the active piece and scores the clear.
func (g *Game) lock() {
	g.lastClear = g.board.Freeze(g.active)
	g.stats.AddScore(g.lastClear)
	g.pieces++
	g.resetsLeft = 0
	g.phase = PhaseLocked
}

// spawn promotes the preview piece, or ends the game if it does not fit.
func (g *Game) spawn() {
	kind := g.bag.Next()
	p := NewPiece(g.next)
	if Overlaps(&g.board, p) {
		g.phase = PhaseGameOver
		return
	}
	g.active = p
	g.next = kind
	g.phase = PhaseFalling
}

// Result summarizes the game for persistence.
type Result struct {
	Score     int
	Lines     int
	Level     int
	HighScore int
	Pieces    int
	Duration  time.Duration
	GameOver  bool
}

// Result returns the game summary as of now.
func (g *Game) Result(now time.Time) Result {
	return Result{
		Score:     g.stats.Score,
		Lines:     g.stats.Lines,
		Level:     g.stats.Level,
		HighScore: g.stats.HighScore,
		Pieces:    g.pieces,
		Duration:  now.Sub(g.startedAt),
		GameOver:  g.phase == PhaseGameOver,
	}
}
