package model_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/okian/underdog/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSpread(t *testing.T) {
	Convey("Given spread conversion", t, func() {
		Convey("Half-point lines survive the fixed-point round trip", func() {
			s := model.SpreadFromFloat(6.5)
			So(s.Float(), ShouldEqual, 6.5)
			So(s.String(), ShouldEqual, "+6.5")
		})

		Convey("Negative lines keep their sign", func() {
			s := model.SpreadFromFloat(-2.5)
			So(s.Float(), ShouldEqual, -2.5)
			So(s.String(), ShouldEqual, "-2.5")
		})

		Convey("Non-finite feed values collapse to zero", func() {
			So(model.SpreadFromFloat(math.NaN()), ShouldEqual, model.Spread(0))
			So(model.SpreadFromFloat(math.Inf(-1)), ShouldEqual, model.Spread(0))
		})

		Convey("JSON encodes as a plain number and decodes back", func() {
			raw, err := json.Marshal(model.SpreadFromFloat(9.5))
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, "9.5")

			var s model.Spread
			So(json.Unmarshal([]byte("-3"), &s), ShouldBeNil)
			So(s.Float(), ShouldEqual, -3)

			So(json.Unmarshal([]byte(`"oops"`), &s), ShouldNotBeNil)
		})
	})
}

func TestPoolState(t *testing.T) {
	Convey("Given a pool state", t, func() {
		state := model.NewPoolState(2025, 1)
		kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
		state.Schedule[1] = []model.Contest{
			{ID: "c1", Kickoff: kickoff, Underdog: model.UnderdogSide{Team: "A", Opponent: "B", Spread: model.SpreadFromFloat(6.5)}},
		}

		Convey("ContestIn resolves only within the named week", func() {
			c, ok := state.ContestIn(1, "c1")
			So(ok, ShouldBeTrue)
			So(c.Underdog.Team, ShouldEqual, "A")

			_, ok = state.ContestIn(2, "c1")
			So(ok, ShouldBeFalse)
			_, ok = state.ContestIn(1, "missing")
			So(ok, ShouldBeFalse)
		})

		Convey("The snapshot survives a JSON round trip", func() {
			state.Players = []model.Player{{ID: "p1", Name: "Avery"}}
			state.Picks["p1"] = map[model.Week]model.Pick{1: {ContestID: "c1", UnderdogTeam: "A"}}
			state.Results["c1"] = model.Result{UnderdogScore: 20, FavoriteScore: 17, Settled: true}
			state.ActivePlayerID = "p1"

			raw, err := json.Marshal(state)
			So(err, ShouldBeNil)

			var decoded model.PoolState
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)
			decoded.Normalize()

			So(decoded.Season, ShouldEqual, 2025)
			So(decoded.CurrentWeek, ShouldEqual, model.Week(1))
			So(decoded.Picks["p1"][1].ContestID, ShouldEqual, "c1")
			So(decoded.Results["c1"].Settled, ShouldBeTrue)
			So(decoded.Schedule[1][0].Underdog.Spread.Float(), ShouldEqual, 6.5)
			So(decoded.Schedule[1][0].Kickoff.Equal(kickoff), ShouldBeTrue)
		})

		Convey("Normalize repairs nil maps after decoding", func() {
			var empty model.PoolState
			empty.Normalize()
			So(empty.Picks, ShouldNotBeNil)
			So(empty.Results, ShouldNotBeNil)
			So(empty.Schedule, ShouldNotBeNil)
		})
	})
}
