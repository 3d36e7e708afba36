package api

import (
	"context"
	"net/http"
	"strconv"
)

// StandingsDependencies defines the interface for leaderboard reads.
type StandingsDependencies interface {
	Standings(ctx context.Context) []Standing
}

// StandingsHandler handles leaderboard requests.
type StandingsHandler struct {
	deps     StandingsDependencies
	maxLimit int
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies, maxLimit int) *StandingsHandler {
	return &StandingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetStandings handles GET /standings?limit=N requests. Limit is
// optional; when present it is capped at the configured maximum.
func (h *StandingsHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rows := h.deps.Standings(r.Context())
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
			return
		}
		if n < len(rows) {
			rows = rows[:n]
		}
	}
	writeJSON(w, http.StatusOK, rows)
}
