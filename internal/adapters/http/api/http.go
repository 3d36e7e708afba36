// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/underdog/internal/domain/model"
	"github.com/okian/underdog/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AddPlayer(ctx context.Context, name string) (model.Player, error)
	SignIn(ctx context.Context, playerID string) error
	SubmitPick(ctx context.Context, playerID string, week model.Week, contestID string) (model.Pick, error)
	EnterResult(ctx context.Context, contestID string, underdogScore, favoriteScore any) model.Result
	AdvanceWeek(ctx context.Context) model.Week

	CurrentWeek() model.Week
	Players(ctx context.Context) []model.Player
	ActivePlayer(ctx context.Context) (model.Player, bool)
	Schedule(ctx context.Context, week model.Week) []model.Contest
	Picks(ctx context.Context, week model.Week) map[string]model.Pick
	Results(ctx context.Context) map[string]model.Result
	Standings(ctx context.Context) []types.Standing
}

// Standing mirrors the read shape returned by leaderboard queries.
type Standing = types.Standing

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	playersHandler   *PlayersHandler
	sessionHandler   *SessionHandler
	picksHandler     *PicksHandler
	resultsHandler   *ResultsHandler
	scheduleHandler  *ScheduleHandler
	standingsHandler *StandingsHandler
	weekHandler      *WeekHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxStandingsLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		playersHandler:   NewPlayersHandler(deps),
		sessionHandler:   NewSessionHandler(deps),
		picksHandler:     NewPicksHandler(deps),
		resultsHandler:   NewResultsHandler(deps),
		scheduleHandler:  NewScheduleHandler(deps),
		standingsHandler: NewStandingsHandler(deps, maxStandingsLimit),
		weekHandler:      NewWeekHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players"))
	mux.HandleFunc("/session", MetricsMiddleware(s.sessionHandler.HandlePostSession, "session"))
	mux.HandleFunc("/picks", MetricsMiddleware(s.picksHandler.HandlePicks, "picks"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandleResults, "results"))
	mux.HandleFunc("/schedule", MetricsMiddleware(s.scheduleHandler.HandleGetSchedule, "schedule"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/week/advance", MetricsMiddleware(s.weekHandler.HandleAdvanceWeek, "week_advance"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
