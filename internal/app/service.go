// Package app provides the pool state store that implements the
// dependencies required by the HTTP API.
//
// All mutation entry points run under a single lock: the pool is a
// single-writer system and every mutation write-through persists the
// whole snapshot before returning. Persistence failures are logged and
// swallowed; in-memory state stays authoritative for the session.
package app

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/underdog/internal/adapters/odds"
	"github.com/okian/underdog/internal/adapters/repository"
	"github.com/okian/underdog/internal/domain/lockout"
	"github.com/okian/underdog/internal/domain/model"
	"github.com/okian/underdog/internal/domain/standings"
	"github.com/okian/underdog/internal/domain/types"
	"github.com/okian/underdog/pkg/logger"
	"github.com/okian/underdog/pkg/metrics"
)

// Service owns the durable pool state and all mutation entry points.
type Service struct {
	mu sync.RWMutex

	state *model.PoolState

	// Collaborators
	snapshots repository.Snapshots
	schedule  odds.Provider

	// Configuration
	season   int
	week     model.Week
	sportKey string
	now      func() time.Time

	// State
	started          bool
	scheduleFallback bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSnapshots sets the snapshot store used for write-through persistence.
func WithSnapshots(s repository.Snapshots) Option {
	return func(svc *Service) {
		if s != nil {
			svc.snapshots = s
		}
	}
}

// WithScheduleProvider sets the odds feed used to populate the week schedule.
func WithScheduleProvider(p odds.Provider) Option {
	return func(svc *Service) {
		if p != nil {
			svc.schedule = p
		}
	}
}

// WithSeason sets the season used when no snapshot exists.
func WithSeason(season int) Option {
	return func(svc *Service) {
		if season > 0 {
			svc.season = season
		}
	}
}

// WithCurrentWeek sets the starting week for a fresh pool.
func WithCurrentWeek(week int) Option {
	return func(svc *Service) {
		if week > 0 {
			svc.week = model.Week(week)
		}
	}
}

// WithSportKey selects the odds feed sport.
func WithSportKey(key string) Option {
	return func(svc *Service) {
		if key != "" {
			svc.sportKey = key
		}
	}
}

// WithClock injects the wall-clock source consulted by the lock policy.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		season:   2025,
		week:     1,
		sportKey: "americanfootball_nfl",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the persisted snapshot (or initializes empty defaults) and
// populates the current week's schedule from the feed, falling back to
// the deterministic sample contests when the feed fails or is empty.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.state = model.NewPoolState(s.season, s.week)
	if s.snapshots != nil {
		state, ok, err := s.snapshots.Load(ctx)
		switch {
		case err != nil:
			s.logger.Warn(ctx, "snapshot load failed; starting empty", logger.Error(err))
		case ok:
			s.state = state
			s.logger.Info(ctx, "restored pool snapshot",
				logger.Int("season", state.Season),
				logger.Int("week", int(state.CurrentWeek)),
				logger.Int("players", len(state.Players)),
			)
		}
	}

	if len(s.state.Schedule[s.state.CurrentWeek]) == 0 {
		s.populateScheduleLocked(ctx)
	}

	s.started = true
	s.persistLocked(ctx)
	s.updateGaugesLocked()
	s.logger.Info(ctx, "pool service started",
		logger.Int("week", int(s.state.CurrentWeek)),
		logger.Int("contests", len(s.state.Schedule[s.state.CurrentWeek])),
		logger.Bool("fallbackSchedule", s.scheduleFallback),
	)
	return nil
}

// populateScheduleLocked fills the current week from the feed, or from
// sample data when the feed fails or returns nothing. Called with the
// write lock held.
func (s *Service) populateScheduleLocked(ctx context.Context) {
	week := s.state.CurrentWeek
	if s.schedule != nil {
		contests, err := s.schedule.FetchWeekSchedule(ctx, s.sportKey)
		if err == nil && len(contests) > 0 {
			s.state.Schedule[week] = contests
			s.scheduleFallback = false
			return
		}
		if err != nil {
			s.logger.Warn(ctx, "schedule fetch failed; using sample contests", logger.Error(err))
		} else {
			s.logger.Warn(ctx, "schedule fetch returned no contests; using sample contests")
		}
	}
	s.state.Schedule[week] = odds.Fallback(s.now())
	s.scheduleFallback = true
	metrics.RecordScheduleFallback()
}

// AddPlayer creates a roster entry and signs it in.
func (s *Service) AddPlayer(ctx context.Context, name string) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.Player{ID: "p_" + uuid.NewString(), Name: name}
	s.state.Players = append(s.state.Players, p)
	s.state.ActivePlayerID = p.ID
	s.persistLocked(ctx)
	s.updateGaugesLocked()
	s.logger.Info(ctx, "player added", logger.String("playerID", p.ID), logger.String("name", name))
	return p, nil
}

// SignIn marks an existing player as the active one.
func (s *Service) SignIn(ctx context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.state.Players {
		if p.ID == playerID {
			s.state.ActivePlayerID = p.ID
			s.persistLocked(ctx)
			s.logger.Info(ctx, "player signed in", logger.String("playerID", playerID))
			return nil
		}
	}
	return ErrUnknownPlayer
}

// SubmitPick upserts the active player's pick for a week. Rejections:
// ErrNoActivePlayer when nobody is signed in (callers ignore this one
// silently), ErrNotSignedIn when playerID is not the active player,
// ErrUnknownContest when the contest is not in that week's schedule,
// and ErrContestLocked once kickoff has passed. Re-picking before
// lockout overwrites the prior pick; last write wins.
func (s *Service) SubmitPick(ctx context.Context, playerID string, week model.Week, contestID string) (model.Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state.ActivePlayerID == "":
		metrics.RecordPickRejected("no_active_player")
		return model.Pick{}, ErrNoActivePlayer
	case playerID != s.state.ActivePlayerID:
		metrics.RecordPickRejected("not_signed_in")
		return model.Pick{}, ErrNotSignedIn
	}

	contest, ok := s.state.ContestIn(week, contestID)
	if !ok {
		metrics.RecordPickRejected("unknown_contest")
		return model.Pick{}, ErrUnknownContest
	}
	if lockout.Locked(contest.Kickoff, s.now()) {
		metrics.RecordPickRejected("locked")
		s.logger.Info(ctx, "pick rejected, contest locked",
			logger.String("playerID", playerID),
			logger.String("contestID", contestID),
		)
		return model.Pick{}, ErrContestLocked
	}

	pick := model.Pick{ContestID: contestID, UnderdogTeam: contest.Underdog.Team}
	if s.state.Picks[playerID] == nil {
		s.state.Picks[playerID] = make(map[model.Week]model.Pick)
	}
	s.state.Picks[playerID][week] = pick
	s.persistLocked(ctx)
	s.updateGaugesLocked()
	metrics.RecordPickSubmitted()
	s.logger.Info(ctx, "pick stored",
		logger.String("playerID", playerID),
		logger.Int("week", int(week)),
		logger.String("underdog", pick.UnderdogTeam),
	)
	return pick, nil
}

// EnterResult records a final score for a contest. Inputs are coerced
// leniently: anything that does not parse as a finite number becomes 0.
// The result is always marked settled and always overwrites any prior
// entry; re-entering identical scores converges to identical state.
// The contest is not validated to exist.
func (s *Service) EnterResult(ctx context.Context, contestID string, underdogScore, favoriteScore any) model.Result {
	res := model.Result{
		UnderdogScore: coerceScore(underdogScore),
		FavoriteScore: coerceScore(favoriteScore),
		Settled:       true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Results[contestID] = res
	s.persistLocked(ctx)
	metrics.RecordResultEntered()
	s.logger.Info(ctx, "result entered",
		logger.String("contestID", contestID),
		logger.Float64("underdogScore", res.UnderdogScore),
		logger.Float64("favoriteScore", res.FavoriteScore),
	)
	return res
}

// AdvanceWeek moves the pool to the next week and populates its
// schedule from the feed (or sample data).
func (s *Service) AdvanceWeek(ctx context.Context) model.Week {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CurrentWeek++
	if len(s.state.Schedule[s.state.CurrentWeek]) == 0 {
		s.populateScheduleLocked(ctx)
	}
	s.persistLocked(ctx)
	s.updateGaugesLocked()
	s.logger.Info(ctx, "advanced week", logger.Int("week", int(s.state.CurrentWeek)))
	return s.state.CurrentWeek
}

// CurrentWeek returns the active contest week.
func (s *Service) CurrentWeek() model.Week {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentWeek
}

// Season returns the pool season.
func (s *Service) Season() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Season
}

// Players returns the roster in insertion order.
func (s *Service) Players(_ context.Context) []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Player, len(s.state.Players))
	copy(out, s.state.Players)
	return out
}

// ActivePlayer returns the signed-in player, if any.
func (s *Service) ActivePlayer(_ context.Context) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.state.Players {
		if p.ID == s.state.ActivePlayerID {
			return p, true
		}
	}
	return model.Player{}, false
}

// Schedule returns the contests for a week. Week 0 means the current week.
func (s *Service) Schedule(_ context.Context, week model.Week) []model.Contest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if week == 0 {
		week = s.state.CurrentWeek
	}
	out := make([]model.Contest, len(s.state.Schedule[week]))
	copy(out, s.state.Schedule[week])
	return out
}

// Picks returns every player's pick for a week, keyed by player id.
// Week 0 means the current week.
func (s *Service) Picks(_ context.Context, week model.Week) map[string]model.Pick {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if week == 0 {
		week = s.state.CurrentWeek
	}
	out := make(map[string]model.Pick)
	for playerID, byWeek := range s.state.Picks {
		if pick, ok := byWeek[week]; ok {
			out[playerID] = pick
		}
	}
	return out
}

// Results returns all entered results keyed by contest id.
func (s *Service) Results(_ context.Context) map[string]model.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]model.Result, len(s.state.Results))
	for id, r := range s.state.Results {
		out[id] = r
	}
	return out
}

// Standings re-derives the full leaderboard from stored picks and
// results. Each call recomputes from scratch; the result depends only
// on the current state.
func (s *Service) Standings(_ context.Context) []types.Standing {
	s.mu.RLock()
	view := standings.View{
		Players:  s.state.Players,
		Picks:    s.state.Picks,
		Schedule: s.state.Schedule,
		Results:  s.state.Results,
	}
	s.mu.RUnlock()

	metrics.RecordStandingsRecompute()
	return standings.Compute(view)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	picks := 0
	for _, byWeek := range s.state.Picks {
		picks += len(byWeek)
	}
	settled := 0
	for _, r := range s.state.Results {
		if r.Settled {
			settled++
		}
	}
	return map[string]interface{}{
		"started":          s.started,
		"season":           s.state.Season,
		"currentWeek":      int(s.state.CurrentWeek),
		"players":          len(s.state.Players),
		"picks":            picks,
		"settledResults":   settled,
		"scheduleFallback": s.scheduleFallback,
	}
}

// persistLocked write-through saves the whole snapshot. Failures are
// logged and swallowed; the in-memory state remains authoritative.
// Called with the write lock held.
func (s *Service) persistLocked(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(ctx, s.state); err != nil {
		metrics.RecordSnapshotFailure()
		s.logger.Warn(ctx, "snapshot save failed; continuing in memory", logger.Error(err))
		return
	}
	metrics.RecordSnapshotSave()
}

func (s *Service) updateGaugesLocked() {
	picks := 0
	for _, byWeek := range s.state.Picks {
		picks += len(byWeek)
	}
	metrics.UpdatePlayerCount(len(s.state.Players))
	metrics.UpdatePickCount(picks)
	metrics.UpdateCurrentWeek(int(s.state.CurrentWeek))
}

// coerceScore converts a user-entered score to a float64. Strings are
// parsed; anything unparseable or non-finite becomes 0 rather than
// faulting.
func coerceScore(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
