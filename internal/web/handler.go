package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// maxLimit caps the limit query parameter.
const maxLimit = 100

// Leaderboard is the part of the run history the server reads.
type Leaderboard interface {
	TopRuns(limit int) ([]storage.Run, error)
	RecentRuns(limit int) ([]storage.Run, error)
	PlayerRuns(player string, limit int) ([]storage.Run, error)
	RunByID(id int64) (*storage.Run, error)
	BestScore() (int, error)
	Summary() (*storage.Summary, error)
}

var _ Leaderboard = (*storage.Store)(nil)

// RunResponse is the JSON form of a run.
type RunResponse struct {
	ID         int64     `json:"id"`
	Rank       int       `json:"rank,omitempty"`
	Player     string    `json:"player"`
	Score      int       `json:"score"`
	Lines      int       `json:"lines"`
	Level      int       `json:"level"`
	Pieces     int       `json:"pieces"`
	DurationMS int64     `json:"duration_ms"`
	GameOver   bool      `json:"game_over"`
	CreatedAt  time.Time `json:"created_at"`
}

// SummaryResponse is the JSON form of the history summary.
type SummaryResponse struct {
	Games      int        `json:"games"`
	BestScore  int        `json:"best_score"`
	AvgScore   float64    `json:"avg_score"`
	TotalLines int64      `json:"total_lines"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func runResponse(r storage.Run) RunResponse {
	return RunResponse{
		ID:         r.ID,
		Player:     r.Player,
		Score:      r.Score,
		Lines:      r.Lines,
		Level:      r.Level,
		Pieces:     r.Pieces,
		DurationMS: r.Duration.Milliseconds(),
		GameOver:   r.GameOver,
		CreatedAt:  r.CreatedAt,
	}
}

// Handler serves the leaderboard endpoints.
type Handler struct {
	store Leaderboard
}

// NewHandler creates a handler over store.
func NewHandler(store Leaderboard) *Handler {
	return &Handler{store: store}
}

// ListRuns handles GET /api/v1/runs
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 10
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	var (
		runs   []storage.Run
		err    error
		ranked = true
	)
	switch view := q.Get("view"); {
	case q.Get("player") != "":
		runs, err = h.store.PlayerRuns(q.Get("player"), limit)
	case view == "" || view == "top":
		runs, err = h.store.TopRuns(limit)
	case view == "recent":
		runs, err = h.store.RecentRuns(limit)
		ranked = false
	default:
		writeError(w, http.StatusBadRequest, "view must be top or recent")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load runs")
		return
	}

	out := make([]RunResponse, len(runs))
	for i, run := range runs {
		out[i] = runResponse(run)
		if ranked {
			out[i].Rank = i + 1
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRun handles GET /api/v1/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	run, err := h.store.RunByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load run")
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, runResponse(*run))
}

// Best handles GET /api/v1/best
func (h *Handler) Best(w http.ResponseWriter, _ *http.Request) {
	best, err := h.store.BestScore()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load best score")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"best_score": best})
}

// Summary handles GET /api/v1/summary
func (h *Handler) Summary(w http.ResponseWriter, _ *http.Request) {
	sum, err := h.store.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load summary")
		return
	}

	resp := SummaryResponse{
		Games:      sum.Games,
		BestScore:  sum.BestScore,
		AvgScore:   sum.AvgScore,
		TotalLines: sum.TotalLines,
	}
	if !sum.LastPlayed.IsZero() {
		resp.LastPlayed = &sum.LastPlayed
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
