package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/underdog/internal/app"
)

// SessionDependencies defines the interface for sign-in operations.
type SessionDependencies interface {
	SignIn(ctx context.Context, playerID string) error
}

// SessionHandler handles sign-in requests.
type SessionHandler struct {
	deps SessionDependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

type signInRequest struct {
	PlayerID string `json:"player_id"`
}

type ackResponse struct {
	Status string `json:"status"`
}

// HandlePostSession handles POST /session requests.
func (h *SessionHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.PlayerID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing player_id"))
		return
	}
	if err := h.deps.SignIn(r.Context(), req.PlayerID); err != nil {
		if errors.Is(err, app.ErrUnknownPlayer) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "signed_in"})
}
