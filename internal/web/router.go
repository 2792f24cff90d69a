package web

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// NewRouter creates the leaderboard router.
//
//	GET /api/v1/runs?view=top|recent&limit=N&player=NAME
//	GET /api/v1/runs/{id}
//	GET /api/v1/best
//	GET /api/v1/summary
//	GET /api/v1/health
func NewRouter(store Leaderboard, logger *log.Logger) http.Handler {
	r := mux.NewRouter()
	h := NewHandler(store)

	r.Use(Recovery(logger))
	r.Use(Logging(logger))

	r.HandleFunc("/api/v1/runs", h.ListRuns).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/runs/{id:[0-9]+}", h.GetRun).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/best", h.Best).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/summary", h.Summary).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/health", healthHandler).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
