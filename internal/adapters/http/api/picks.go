package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/underdog/internal/app"
	"github.com/okian/underdog/internal/domain/model"
)

// PickDependencies defines the interface for pick operations.
type PickDependencies interface {
	SubmitPick(ctx context.Context, playerID string, week model.Week, contestID string) (model.Pick, error)
	Picks(ctx context.Context, week model.Week) map[string]model.Pick
	CurrentWeek() model.Week
}

// PicksHandler handles pick requests.
type PicksHandler struct {
	deps PickDependencies
}

// NewPicksHandler creates a new picks handler.
func NewPicksHandler(deps PickDependencies) *PicksHandler {
	return &PicksHandler{deps: deps}
}

type submitPickRequest struct {
	PlayerID  string `json:"player_id"`
	Week      int    `json:"week"`
	ContestID string `json:"contest_id"`
}

func (p submitPickRequest) validate() error {
	switch {
	case strings.TrimSpace(p.PlayerID) == "":
		return errors.New("missing player_id")
	case strings.TrimSpace(p.ContestID) == "":
		return errors.New("missing contest_id")
	case p.Week < 0:
		return errors.New("invalid week")
	}
	return nil
}

// HandlePicks handles GET /picks?week=N and POST /picks.
//
// POST maps rejections onto status codes: a locked contest is 409, an
// unknown contest 400, picking for a player who is not signed in 403.
// Submitting with no active player is not an error: it returns 202 with
// a no-op ack and the pick is dropped.
func (h *PicksHandler) HandlePicks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *PicksHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	week := h.deps.CurrentWeek()
	if s := r.URL.Query().Get("week"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		week = model.Week(n)
	}
	writeJSON(w, http.StatusOK, h.deps.Picks(r.Context(), week))
}

func (h *PicksHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req submitPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	week := model.Week(req.Week)
	if week == 0 {
		week = h.deps.CurrentWeek()
	}
	pick, err := h.deps.SubmitPick(r.Context(), req.PlayerID, week, req.ContestID)
	switch {
	case errors.Is(err, app.ErrNoActivePlayer):
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "ignored"})
	case errors.Is(err, app.ErrNotSignedIn):
		writeError(w, http.StatusForbidden, "not_signed_in", err)
	case errors.Is(err, app.ErrUnknownContest):
		writeError(w, http.StatusBadRequest, "unknown_contest", err)
	case errors.Is(err, app.ErrContestLocked):
		writeError(w, http.StatusConflict, "locked", err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	default:
		writeJSON(w, http.StatusCreated, pick)
	}
}
