package odds_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/underdog/internal/adapters/odds"
	. "github.com/smartystreets/goconvey/convey"
)

const feedPayload = `[
  {
    "id": "game-1",
    "commence_time": "2025-09-07T17:00:00Z",
    "home_team": "Carolina Panthers",
    "away_team": "Dallas Cowboys",
    "sites": [{"odds": {"spreads": {"points": 6.5}}}]
  },
  {
    "id": "game-2",
    "commence_time": "2025-09-07T20:25:00Z",
    "home_team": "Buffalo Bills",
    "away_team": "Tennessee Titans",
    "sites": [{"odds": {"spreads": {"points": -9.5}}}]
  },
  {
    "id": "game-3",
    "commence_time": "2025-09-08T00:20:00Z",
    "home_team": "New York Giants",
    "away_team": "Philadelphia Eagles",
    "sites": []
  }
]`

func TestFetchWeekSchedule(t *testing.T) {
	ctx := context.Background()

	Convey("Given a feed serving the spreads market", t, func() {
		var gotPath string
		var gotQuery map[string][]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(feedPayload))
		}))
		defer srv.Close()

		client := odds.NewClient(odds.WithBaseURL(srv.URL), odds.WithAPIKey("test-key"))

		Convey("The request targets the v4 odds endpoint with the right market", func() {
			_, err := client.FetchWeekSchedule(ctx, "americanfootball_nfl")
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/v4/sports/americanfootball_nfl/odds")
			So(gotQuery["markets"], ShouldResemble, []string{"spreads"})
			So(gotQuery["apiKey"], ShouldResemble, []string{"test-key"})
		})

		Convey("A positive home line makes the home side the underdog", func() {
			contests, err := client.FetchWeekSchedule(ctx, "americanfootball_nfl")
			So(err, ShouldBeNil)
			So(contests, ShouldHaveLength, 3)
			So(contests[0].ID, ShouldEqual, "game-1")
			So(contests[0].Underdog.Team, ShouldEqual, "Carolina Panthers")
			So(contests[0].Underdog.Opponent, ShouldEqual, "Dallas Cowboys")
			So(contests[0].Underdog.Spread.Float(), ShouldEqual, 6.5)
			So(contests[0].Kickoff.Equal(time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("A non-positive home line makes the away side the underdog, line kept as quoted", func() {
			contests, err := client.FetchWeekSchedule(ctx, "americanfootball_nfl")
			So(err, ShouldBeNil)
			So(contests[1].Underdog.Team, ShouldEqual, "Tennessee Titans")
			So(contests[1].Underdog.Opponent, ShouldEqual, "Buffalo Bills")
			So(contests[1].Underdog.Spread.Float(), ShouldEqual, -9.5)
		})

		Convey("A matchup with no quoted sites defaults to a zero line", func() {
			contests, err := client.FetchWeekSchedule(ctx, "americanfootball_nfl")
			So(err, ShouldBeNil)
			So(contests[2].Underdog.Team, ShouldEqual, "Philadelphia Eagles")
			So(contests[2].Underdog.Spread.Float(), ShouldEqual, 0)
		})
	})

	Convey("Given a feed returning an error status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := odds.NewClient(odds.WithBaseURL(srv.URL))

		Convey("The fetch fails with ErrFetch", func() {
			_, err := client.FetchWeekSchedule(ctx, "americanfootball_nfl")
			So(err, ShouldWrap, odds.ErrFetch)
		})
	})

	Convey("Given a feed returning malformed JSON", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"not": "an array"`))
		}))
		defer srv.Close()

		client := odds.NewClient(odds.WithBaseURL(srv.URL))

		Convey("The fetch fails with ErrDecode", func() {
			_, err := client.FetchWeekSchedule(ctx, "americanfootball_nfl")
			So(err, ShouldWrap, odds.ErrDecode)
		})
	})

	Convey("Given an unreachable feed", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		srv.Close()

		client := odds.NewClient(odds.WithBaseURL(srv.URL))

		Convey("The fetch fails with ErrFetch", func() {
			_, err := client.FetchWeekSchedule(ctx, "americanfootball_nfl")
			So(err, ShouldWrap, odds.ErrFetch)
		})
	})
}

func TestFallback(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given the sample schedule", t, func() {
		contests := odds.Fallback(now)

		Convey("It always carries at least two contests", func() {
			So(len(contests), ShouldBeGreaterThanOrEqualTo, 2)
		})

		Convey("Every kickoff is in the future so picks stay open", func() {
			for _, c := range contests {
				So(c.Kickoff.After(now), ShouldBeTrue)
			}
		})

		Convey("Ids and lines are deterministic across calls", func() {
			So(odds.Fallback(now), ShouldResemble, contests)
			So(contests[0].ID, ShouldEqual, "sample-1")
			So(contests[0].Underdog.Spread.Float(), ShouldEqual, 6.5)
		})
	})
}
