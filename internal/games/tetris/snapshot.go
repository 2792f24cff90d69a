package tetris

import "time"

// Snapshot is a read-only copy of everything the renderer needs for one
// frame. It shares no memory with the Game.
type Snapshot struct {
	Board     Board
	Active    Piece
	HasActive bool
	Next      Kind
	Phase     Phase
	Paused    bool

	Score     int
	HighScore int
	Level     int
	Lines     int
	Delay     time.Duration

	LastClear  int // Rows cleared by the most recent lock
	ResetsLeft int // Lock-delay resets left while resting
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:      g.board,
		Active:     g.active,
		HasActive:  g.hasActive(),
		Next:       g.next,
		Phase:      g.phase,
		Paused:     g.paused,
		Score:      g.stats.Score,
		HighScore:  g.stats.HighScore,
		Level:      g.stats.Level,
		Lines:      g.stats.Lines,
		Delay:      g.stats.Delay,
		LastClear:  g.lastClear,
		ResetsLeft: g.resetsLeft,
	}
}

// GameOver reports whether the snapshot was taken after game over.
func (s Snapshot) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Cell returns what to draw at (x, y): the active piece's tile if it
// covers the position, otherwise the board cell. active reports which.
func (s Snapshot) Cell(x, y int) (c Cell, active bool) {
	if s.HasActive {
		shape := s.Active.Shape()
		if shape.Filled(x-s.Active.X, y-s.Active.Y) {
			return Cell{Filled: true, Color: s.Active.Kind.Color()}, true
		}
	}
	if !InBounds(x, y) {
		return Cell{}, false
	}
	return s.Board[y][x], false
}
