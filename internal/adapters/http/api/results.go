package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/underdog/internal/domain/model"
)

// ResultDependencies defines the interface for result entry.
type ResultDependencies interface {
	EnterResult(ctx context.Context, contestID string, underdogScore, favoriteScore any) model.Result
	Results(ctx context.Context) map[string]model.Result
}

// ResultsHandler handles result requests.
type ResultsHandler struct {
	deps ResultDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// Scores are decoded as json.RawMessage so both numbers and strings
// reach the store's lenient coercion untouched.
type enterResultRequest struct {
	ContestID     string          `json:"contest_id"`
	UnderdogScore json.RawMessage `json:"underdog_score"`
	FavoriteScore json.RawMessage `json:"favorite_score"`
}

// HandleResults handles GET /results and POST /results.
func (h *ResultsHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Results(r.Context()))
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ResultsHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req enterResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.ContestID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing contest_id"))
		return
	}
	res := h.deps.EnterResult(r.Context(), req.ContestID,
		rawScore(req.UnderdogScore), rawScore(req.FavoriteScore))
	writeJSON(w, http.StatusOK, res)
}

// rawScore unwraps a raw JSON value to what the store coerces: a
// float64 for numbers, the inner text for strings, nil for everything
// else (absent, null, objects).
func rawScore(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return nil
}
