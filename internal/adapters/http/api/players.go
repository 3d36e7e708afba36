package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/underdog/internal/app"
	"github.com/okian/underdog/internal/domain/model"
)

// PlayerDependencies defines the interface for roster operations.
type PlayerDependencies interface {
	AddPlayer(ctx context.Context, name string) (model.Player, error)
	Players(ctx context.Context) []model.Player
	ActivePlayer(ctx context.Context) (model.Player, bool)
}

// PlayersHandler handles roster requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

type playersResponse struct {
	Players      []model.Player `json:"players"`
	ActivePlayer *model.Player  `json:"active_player,omitempty"`
}

// HandlePlayers handles GET /players (roster) and POST /players
// (add and sign in).
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		resp := playersResponse{Players: h.deps.Players(r.Context())}
		if active, ok := h.deps.ActivePlayer(r.Context()); ok {
			resp.ActivePlayer = &active
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		var req addPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing name"))
			return
		}
		player, err := h.deps.AddPlayer(r.Context(), req.Name)
		if err != nil {
			if errors.Is(err, app.ErrEmptyName) {
				writeError(w, http.StatusBadRequest, "bad_request", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	default:
		http.NotFound(w, r)
	}
}
