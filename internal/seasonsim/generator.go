package seasonsim

import (
	"fmt"
	"math/rand"

	"github.com/okian/underdog/internal/domain/model"
)

// Score generation ranges. Kept small and integral, like real finals.
const (
	maxTeamScore = 45
)

// generator produces deterministic players, pick choices and results
// from a seeded source, so a run can be replayed exactly.
type generator struct {
	rng *rand.Rand
}

func newGenerator(seed int64) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // deterministic seed for reproducible runs
}

// playerNames returns n distinct display names.
func (g *generator) playerNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("sim-player-%03d", i+1)
	}
	return names
}

// pickContest chooses one contest id from the week schedule.
func (g *generator) pickContest(contests []model.Contest) (string, bool) {
	if len(contests) == 0 {
		return "", false
	}
	return contests[g.rng.Intn(len(contests))].ID, true
}

// result rolls a final score for a contest.
func (g *generator) result() (underdog, favorite int) {
	underdog = g.rng.Intn(maxTeamScore)
	favorite = g.rng.Intn(maxTeamScore)
	return underdog, favorite
}
