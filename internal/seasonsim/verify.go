package seasonsim

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/underdog/internal/domain/model"
	"github.com/okian/underdog/internal/domain/standings"
	"github.com/okian/underdog/internal/domain/types"
	"github.com/okian/underdog/pkg/logger"
)

// Tolerance for comparing float point totals after JSON round-trips.
const pointsEpsilon = 1e-9

// seasonHistory records everything the simulator submitted so the
// leaderboard can be recomputed independently of the server.
type seasonHistory struct {
	players  []model.Player
	picks    map[string]map[model.Week]model.Pick
	schedule map[model.Week][]model.Contest
	results  map[string]model.Result
}

func newSeasonHistory() *seasonHistory {
	return &seasonHistory{
		picks:    make(map[string]map[model.Week]model.Pick),
		schedule: make(map[model.Week][]model.Contest),
		results:  make(map[string]model.Result),
	}
}

func (h *seasonHistory) recordSchedule(week model.Week, contests []model.Contest) {
	h.schedule[week] = contests
}

func (h *seasonHistory) recordPick(p model.Player, week model.Week, pick model.Pick) {
	if h.picks[p.ID] == nil {
		h.picks[p.ID] = make(map[model.Week]model.Pick)
		h.players = append(h.players, p)
	}
	h.picks[p.ID][week] = pick
}

func (h *seasonHistory) recordResult(contestID string, res model.Result) {
	h.results[contestID] = res
}

// verifyStandings recomputes the leaderboard from the recorded history
// and checks the server's rows for matching points, wins and covers.
func verifyStandings(ctx context.Context, history *seasonHistory, got []types.Standing) error {
	want := standings.Compute(standings.View{
		Players:  history.players,
		Picks:    history.picks,
		Schedule: history.schedule,
		Results:  history.results,
	})

	byID := make(map[string]types.Standing, len(got))
	for _, row := range got {
		byID[row.PlayerID] = row
	}

	for _, w := range want {
		g, ok := byID[w.PlayerID]
		if !ok {
			return fmt.Errorf("player %s missing from server standings", w.PlayerID)
		}
		if math.Abs(g.Points-w.Points) > pointsEpsilon {
			return fmt.Errorf("player %s points mismatch: server %.2f, recomputed %.2f", w.PlayerID, g.Points, w.Points)
		}
		if g.Wins != w.Wins || g.Covers != w.Covers {
			return fmt.Errorf("player %s counters mismatch: server %d/%d, recomputed %d/%d",
				w.PlayerID, g.Wins, g.Covers, w.Wins, w.Covers)
		}
	}

	// Server ordering must be points-descending.
	for i := 1; i < len(got); i++ {
		if got[i].Points > got[i-1].Points+pointsEpsilon {
			return fmt.Errorf("standings out of order at rank %d", i+1)
		}
	}

	logger.Get().Info(ctx, "standings verified",
		logger.Int("rows", len(got)),
	)
	return nil
}
