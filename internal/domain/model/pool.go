// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
	"time"
)

// SpreadScale is the fixed-point scale used for spreads and points.
// Feeds quote spreads in half-point increments, so two decimal places
// are more than enough while keeping push comparisons exact.
const SpreadScale = 100

// Spread is the signed point adjustment added to the underdog's score
// for against-the-spread evaluation, held as a fixed-point value so that
// "adjusted score equals favorite score" can be tested with integer
// equality. The sign is carried as-is; a feed may quote zero or even a
// negative line and the scoring rules must not assume otherwise.
type Spread int64

// SpreadFromFloat converts a feed value to a Spread, rounding to the
// fixed-point scale. Non-finite inputs collapse to zero.
func SpreadFromFloat(v float64) Spread {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Spread(math.Round(v * SpreadScale))
}

// Float returns the spread as a float64 for display and JSON payloads.
func (s Spread) Float() float64 {
	return float64(s) / SpreadScale
}

func (s Spread) String() string {
	if s >= 0 {
		return "+" + strconv.FormatFloat(s.Float(), 'f', -1, 64)
	}
	return strconv.FormatFloat(s.Float(), 'f', -1, 64)
}

// MarshalJSON encodes the spread as a plain decimal number.
func (s Spread) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(s.Float(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts any JSON number, rounding to the fixed-point scale.
func (s *Spread) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = SpreadFromFloat(v)
	return nil
}

// Week numbers a scheduled contest week within a season.
type Week int

// Player is a roster entry. Players are created once and never mutated
// or removed.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnderdogSide names the underdog of a contest, its opponent, and the line.
type UnderdogSide struct {
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	Spread   Spread `json:"spread"`
}

// Contest is a single scheduled matchup sourced from the odds feed.
// Immutable once observed for a given week.
type Contest struct {
	ID       string       `json:"id"`
	Kickoff  time.Time    `json:"kickoff"`
	Underdog UnderdogSide `json:"underdog"`
}

// Pick records a player's chosen underdog for a week. At most one pick
// exists per (player, week); re-picking before lockout overwrites it.
type Pick struct {
	ContestID    string `json:"contest_id"`
	UnderdogTeam string `json:"underdog_team"`
}

// Result holds an entered final score for a contest. The zero value is
// the absent, unsettled state. Re-entering a settled result overwrites
// it silently; there is no audit trail.
type Result struct {
	UnderdogScore float64 `json:"underdog_score"`
	FavoriteScore float64 `json:"favorite_score"`
	Settled       bool    `json:"settled"`
}

// PoolState is the aggregate snapshot persisted on every mutation.
// Picks are keyed by player id, then week. Results are keyed by contest id.
type PoolState struct {
	Season         int                      `json:"season"`
	CurrentWeek    Week                     `json:"current_week"`
	Players        []Player                 `json:"players"`
	Picks          map[string]map[Week]Pick `json:"picks"`
	Results        map[string]Result        `json:"results"`
	Schedule       map[Week][]Contest       `json:"schedule"`
	ActivePlayerID string                   `json:"active_player,omitempty"`
}

// NewPoolState returns an empty state for the given season and week with
// all maps initialized.
func NewPoolState(season int, week Week) *PoolState {
	return &PoolState{
		Season:      season,
		CurrentWeek: week,
		Picks:       make(map[string]map[Week]Pick),
		Results:     make(map[string]Result),
		Schedule:    make(map[Week][]Contest),
	}
}

// Normalize ensures all maps are non-nil after decoding a snapshot.
func (p *PoolState) Normalize() {
	if p.Picks == nil {
		p.Picks = make(map[string]map[Week]Pick)
	}
	if p.Results == nil {
		p.Results = make(map[string]Result)
	}
	if p.Schedule == nil {
		p.Schedule = make(map[Week][]Contest)
	}
}

// ContestIn resolves a contest by id within one week's schedule.
func (p *PoolState) ContestIn(week Week, contestID string) (Contest, bool) {
	for _, c := range p.Schedule[week] {
		if c.ID == contestID {
			return c, true
		}
	}
	return Contest{}, false
}
