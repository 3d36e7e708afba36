// Package standings derives the ranked leaderboard from pick history.
package standings

import (
	"sort"

	"github.com/okian/underdog/internal/domain/model"
	"github.com/okian/underdog/internal/domain/scoring"
	"github.com/okian/underdog/internal/domain/types"
)

// View is the read-only slice of pool state the aggregator consumes.
type View struct {
	Players  []model.Player
	Picks    map[string]map[model.Week]model.Pick
	Schedule map[model.Week][]model.Contest
	Results  map[string]model.Result
}

// Compute folds the scoring engine over every player's full pick
// history and returns the leaderboard ordered by points descending.
// It re-derives everything from scratch on each call; there is no
// incremental accumulator to drift out of sync.
//
// Missing joins contribute nothing: a pick whose contest is absent from
// that week's schedule, or whose result is absent or unsettled, adds
// zero points and is excluded from the win/cover counters. Win and
// cover are mutually exclusive, win checked first, and are counted
// independently of the point total.
//
// Ties on points keep roster order, so repeated calls on identical
// state produce identical output.
func Compute(v View) []types.Standing {
	rows := make([]types.Standing, 0, len(v.Players))
	totals := make([]scoring.Points, 0, len(v.Players))

	for _, p := range v.Players {
		var total scoring.Points
		var wins, covers int
		for week, pick := range v.Picks[p.ID] {
			contest, ok := contestIn(v.Schedule[week], pick.ContestID)
			if !ok {
				continue
			}
			res, ok := v.Results[pick.ContestID]
			if !ok || !res.Settled {
				continue
			}
			total += scoring.Score(contest.Underdog.Spread, res)
			if scoring.Outright(res) {
				wins++
			} else if scoring.Covered(contest.Underdog.Spread, res) {
				covers++
			}
		}
		rows = append(rows, types.Standing{
			PlayerID: p.ID,
			Name:     p.Name,
			Points:   total.Float(),
			Wins:     wins,
			Covers:   covers,
		})
		totals = append(totals, total)
	}

	// Sort on the fixed-point totals so ordering never depends on
	// float rounding. SliceStable preserves roster order on ties.
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return totals[idx[a]] > totals[idx[b]]
	})

	out := make([]types.Standing, len(rows))
	for rank, i := range idx {
		out[rank] = rows[i]
		out[rank].Rank = rank + 1
	}
	return out
}

func contestIn(contests []model.Contest, id string) (model.Contest, bool) {
	for _, c := range contests {
		if c.ID == id {
			return c, true
		}
	}
	return model.Contest{}, false
}
