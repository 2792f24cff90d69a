package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Recorder writes finished games to the run history. Failures are
// logged and otherwise ignored; the game never depends on the store.
type Recorder struct {
	Store  *storage.Store // Nil disables recording
	Player string
	Logger *log.Logger
}

// GameOver records a game that ended by topping out.
func (r Recorder) GameOver(res tetris.Result) {
	r.save(res)
}

// Exit records a game the player left mid-way. Games already recorded
// by GameOver and games without a single locked piece are skipped.
func (r Recorder) Exit(res tetris.Result) {
	if res.GameOver || res.Pieces == 0 {
		return
	}
	r.save(res)
}

func (r Recorder) save(res tetris.Result) {
	if r.Store == nil {
		return
	}
	id, err := r.Store.SaveRun(storage.Run{
		Player:   r.Player,
		Score:    res.Score,
		Lines:    res.Lines,
		Level:    res.Level,
		Pieces:   res.Pieces,
		Duration: res.Duration,
		GameOver: res.GameOver,
	})
	if r.Logger == nil {
		return
	}
	if err != nil {
		r.Logger.Warn("could not save run", "player", r.Player, "error", err)
		return
	}
	r.Logger.Debug("run saved", "id", id, "player", r.Player, "score", res.Score, "lines", res.Lines)
}
