package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/underdog/internal/domain/model"
)

// ScheduleDependencies defines the interface for schedule reads.
type ScheduleDependencies interface {
	Schedule(ctx context.Context, week model.Week) []model.Contest
	CurrentWeek() model.Week
}

// ScheduleHandler handles schedule requests.
type ScheduleHandler struct {
	deps ScheduleDependencies
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps ScheduleDependencies) *ScheduleHandler {
	return &ScheduleHandler{deps: deps}
}

type scheduleResponse struct {
	Week     model.Week      `json:"week"`
	Contests []model.Contest `json:"contests"`
}

// HandleGetSchedule handles GET /schedule?week=N requests. Week
// defaults to the current week.
func (h *ScheduleHandler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	week := h.deps.CurrentWeek()
	if s := r.URL.Query().Get("week"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		week = model.Week(n)
	}
	writeJSON(w, http.StatusOK, scheduleResponse{
		Week:     week,
		Contests: h.deps.Schedule(r.Context(), week),
	})
}
