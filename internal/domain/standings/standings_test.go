package standings_test

import (
	"testing"
	"time"

	"github.com/okian/underdog/internal/domain/model"
	"github.com/okian/underdog/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func oneContestView(spread float64, res model.Result, hasResult bool) standings.View {
	v := standings.View{
		Players: []model.Player{{ID: "p1", Name: "Avery"}},
		Picks: map[string]map[model.Week]model.Pick{
			"p1": {1: {ContestID: "c1", UnderdogTeam: "A"}},
		},
		Schedule: map[model.Week][]model.Contest{
			1: {{ID: "c1", Kickoff: time.Now(), Underdog: model.UnderdogSide{Team: "A", Opponent: "B", Spread: model.SpreadFromFloat(spread)}}},
		},
		Results: map[string]model.Result{},
	}
	if hasResult {
		v.Results["c1"] = res
	}
	return v
}

func TestComputeOutcomes(t *testing.T) {
	Convey("Given one player picking a +6.5 underdog", t, func() {
		Convey("An outright win 20-17 yields 7.5 points, one win, no covers", func() {
			rows := standings.Compute(oneContestView(6.5,
				model.Result{UnderdogScore: 20, FavoriteScore: 17, Settled: true}, true))
			So(rows, ShouldHaveLength, 1)
			So(rows[0].Points, ShouldEqual, 7.5)
			So(rows[0].Wins, ShouldEqual, 1)
			So(rows[0].Covers, ShouldEqual, 0)
			So(rows[0].Rank, ShouldEqual, 1)
		})

		Convey("An exact push 10-16.5 yields 0.5 points and no counters", func() {
			rows := standings.Compute(oneContestView(6.5,
				model.Result{UnderdogScore: 10, FavoriteScore: 16.5, Settled: true}, true))
			So(rows[0].Points, ShouldEqual, 0.5)
			So(rows[0].Wins, ShouldEqual, 0)
			So(rows[0].Covers, ShouldEqual, 0)
		})

		Convey("A cover without a win 10-15 yields 1 point and one cover", func() {
			rows := standings.Compute(oneContestView(6.5,
				model.Result{UnderdogScore: 10, FavoriteScore: 15, Settled: true}, true))
			So(rows[0].Points, ShouldEqual, 1)
			So(rows[0].Wins, ShouldEqual, 0)
			So(rows[0].Covers, ShouldEqual, 1)
		})

		Convey("An unsettled result contributes nothing", func() {
			rows := standings.Compute(oneContestView(6.5,
				model.Result{UnderdogScore: 20, FavoriteScore: 17}, true))
			So(rows[0].Points, ShouldEqual, 0)
			So(rows[0].Wins, ShouldEqual, 0)
			So(rows[0].Covers, ShouldEqual, 0)
		})

		Convey("An absent result contributes nothing", func() {
			rows := standings.Compute(oneContestView(6.5, model.Result{}, false))
			So(rows[0].Points, ShouldEqual, 0)
		})
	})
}

func TestComputeMissingJoins(t *testing.T) {
	Convey("Given a pick whose contest is missing from the schedule", t, func() {
		v := standings.View{
			Players: []model.Player{{ID: "p1", Name: "Avery"}},
			Picks: map[string]map[model.Week]model.Pick{
				"p1": {1: {ContestID: "ghost", UnderdogTeam: "A"}},
			},
			Schedule: map[model.Week][]model.Contest{1: {}},
			Results: map[string]model.Result{
				"ghost": {UnderdogScore: 50, FavoriteScore: 0, Settled: true},
			},
		}

		Convey("It is skipped silently, never a fault", func() {
			rows := standings.Compute(v)
			So(rows, ShouldHaveLength, 1)
			So(rows[0].Points, ShouldEqual, 0)
			So(rows[0].Wins, ShouldEqual, 0)
		})
	})

	Convey("Given a player with no picks at all", t, func() {
		v := standings.View{
			Players:  []model.Player{{ID: "p1", Name: "Avery"}},
			Picks:    map[string]map[model.Week]model.Pick{},
			Schedule: map[model.Week][]model.Contest{},
			Results:  map[string]model.Result{},
		}

		Convey("They still appear with zero points", func() {
			rows := standings.Compute(v)
			So(rows, ShouldHaveLength, 1)
			So(rows[0].Points, ShouldEqual, 0)
		})
	})
}

func multiWeekView() standings.View {
	contest := func(id string, spread float64) model.Contest {
		return model.Contest{ID: id, Underdog: model.UnderdogSide{Team: id + "-dog", Opponent: id + "-fav", Spread: model.SpreadFromFloat(spread)}}
	}
	return standings.View{
		Players: []model.Player{
			{ID: "p1", Name: "Avery"},
			{ID: "p2", Name: "Blake"},
			{ID: "p3", Name: "Casey"},
		},
		Picks: map[string]map[model.Week]model.Pick{
			"p1": {
				1: {ContestID: "c1", UnderdogTeam: "c1-dog"},
				2: {ContestID: "c3", UnderdogTeam: "c3-dog"},
			},
			"p2": {
				1: {ContestID: "c2", UnderdogTeam: "c2-dog"},
				2: {ContestID: "c3", UnderdogTeam: "c3-dog"},
			},
			"p3": {
				1: {ContestID: "c2", UnderdogTeam: "c2-dog"},
			},
		},
		Schedule: map[model.Week][]model.Contest{
			1: {contest("c1", 6.5), contest("c2", 3)},
			2: {contest("c3", 10)},
		},
		Results: map[string]model.Result{
			"c1": {UnderdogScore: 20, FavoriteScore: 17, Settled: true}, // win: 7.5
			"c2": {UnderdogScore: 14, FavoriteScore: 16, Settled: true}, // cover: 1
			"c3": {UnderdogScore: 7, FavoriteScore: 17, Settled: true},  // push: 0.5
		},
	}
}

func TestComputeOrderingAndDeterminism(t *testing.T) {
	Convey("Given three players across two weeks", t, func() {
		v := multiWeekView()

		Convey("Rows come back ordered by points descending", func() {
			rows := standings.Compute(v)
			So(rows, ShouldHaveLength, 3)
			So(rows[0].Name, ShouldEqual, "Avery") // 7.5 + 0.5
			So(rows[0].Points, ShouldEqual, 8)
			So(rows[0].Wins, ShouldEqual, 1)
			So(rows[0].Covers, ShouldEqual, 1)
			So(rows[1].Name, ShouldEqual, "Blake") // 1 + 0.5
			So(rows[1].Points, ShouldEqual, 1.5)
			So(rows[2].Name, ShouldEqual, "Casey") // 1
			So(rows[2].Points, ShouldEqual, 1)
			for i, row := range rows {
				So(row.Rank, ShouldEqual, i+1)
			}
		})

		Convey("Two runs on identical state produce identical output", func() {
			first := standings.Compute(v)
			second := standings.Compute(v)
			So(second, ShouldResemble, first)
		})

		Convey("Players tied on points keep roster order", func() {
			// Drop Avery's week-2 push so nobody moves; give Casey the
			// same total as Blake.
			delete(v.Picks["p1"], 2)
			v.Picks["p3"][2] = model.Pick{ContestID: "c3", UnderdogTeam: "c3-dog"}
			rows := standings.Compute(v)
			So(rows[0].Name, ShouldEqual, "Avery")
			So(rows[1].Points, ShouldEqual, rows[2].Points)
			So(rows[1].Name, ShouldEqual, "Blake")
			So(rows[2].Name, ShouldEqual, "Casey")
		})
	})
}
