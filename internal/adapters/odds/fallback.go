package odds

import (
	"time"

	"github.com/okian/underdog/internal/domain/model"
)

// Fallback sample schedule constants.
const (
	fallbackFirstKickoff  = 48 * time.Hour
	fallbackSecondKickoff = 51 * time.Hour
	fallbackThirdKickoff  = 72 * time.Hour
)

// Fallback returns a deterministic sample schedule used whenever the
// feed fails or comes back empty, so pick submission keeps working
// offline. Kickoffs are placed relative to now so the sample contests
// are open for picks.
func Fallback(now time.Time) []model.Contest {
	return []model.Contest{
		{
			ID:      "sample-1",
			Kickoff: now.Add(fallbackFirstKickoff),
			Underdog: model.UnderdogSide{
				Team:     "Carolina Panthers",
				Opponent: "Dallas Cowboys",
				Spread:   model.SpreadFromFloat(6.5),
			},
		},
		{
			ID:      "sample-2",
			Kickoff: now.Add(fallbackSecondKickoff),
			Underdog: model.UnderdogSide{
				Team:     "Tennessee Titans",
				Opponent: "Buffalo Bills",
				Spread:   model.SpreadFromFloat(9.5),
			},
		},
		{
			ID:      "sample-3",
			Kickoff: now.Add(fallbackThirdKickoff),
			Underdog: model.UnderdogSide{
				Team:     "New York Giants",
				Opponent: "Philadelphia Eagles",
				Spread:   model.SpreadFromFloat(3),
			},
		},
	}
}
