package api

import (
	"context"
	"net/http"

	"github.com/okian/underdog/internal/domain/model"
)

// WeekDependencies defines the interface for week advancement.
type WeekDependencies interface {
	AdvanceWeek(ctx context.Context) model.Week
}

// WeekHandler handles week advancement requests.
type WeekHandler struct {
	deps WeekDependencies
}

// NewWeekHandler creates a new week handler.
func NewWeekHandler(deps WeekDependencies) *WeekHandler {
	return &WeekHandler{deps: deps}
}

type weekResponse struct {
	Week model.Week `json:"week"`
}

// HandleAdvanceWeek handles POST /week/advance requests.
func (h *WeekHandler) HandleAdvanceWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, weekResponse{Week: h.deps.AdvanceWeek(r.Context())})
}
