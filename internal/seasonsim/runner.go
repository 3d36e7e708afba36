package seasonsim

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/underdog/internal/domain/model"
	"github.com/okian/underdog/internal/domain/types"
	"github.com/okian/underdog/pkg/logger"
)

// Run plays a full synthetic season against the server at
// config.BaseURL and verifies the reported standings.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}
	gen := newGenerator(config.Seed)
	client := newHTTPClient(config.Timeout)

	log := logger.Get()
	log.Info(ctx, "starting season simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", config.Players),
		logger.Int("weeks", config.Weeks),
		logger.Any("seed", config.Seed),
	)

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	players, err := addPlayers(ctx, client, config, gen, stats)
	if err != nil {
		return fmt.Errorf("roster setup failed: %w", err)
	}

	// Book-keeping for the independent recomputation in verify.go.
	history := newSeasonHistory()

	for w := 0; w < config.Weeks; w++ {
		if err := playWeek(ctx, client, config, gen, players, history, stats); err != nil {
			return fmt.Errorf("week %d failed: %w", w+1, err)
		}
		stats.WeeksPlayed++
	}

	var got []types.Standing
	if err := client.getJSON(ctx, config.BaseURL+"/standings", &got); err != nil {
		return fmt.Errorf("standings retrieval failed: %w", err)
	}

	if err := verifyStandings(ctx, history, got); err != nil {
		return fmt.Errorf("standings verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "season simulation completed",
		logger.Int("playersAdded", stats.PlayersAdded),
		logger.Int("picksSubmitted", stats.PicksSubmitted),
		logger.Int("picksRejected", stats.PicksRejected),
		logger.Int("resultsEntered", stats.ResultsEntered),
		logger.Int("weeksPlayed", stats.WeeksPlayed),
		logger.String("duration", stats.Duration.String()),
	)
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient, config *Config) error {
	return client.getJSON(ctx, config.BaseURL+"/healthz", nil)
}

// addPlayers creates the roster and returns it.
func addPlayers(ctx context.Context, client *httpClient, config *Config, gen *generator, stats *Stats) ([]model.Player, error) {
	names := gen.playerNames(config.Players)
	players := make([]model.Player, 0, len(names))
	for _, name := range names {
		var p model.Player
		status, err := client.postJSON(ctx, config.BaseURL+"/players", map[string]string{"name": name}, &p)
		if err != nil {
			return nil, err
		}
		if status != http.StatusCreated {
			return nil, fmt.Errorf("add player returned status %d", status)
		}
		players = append(players, p)
		stats.PlayersAdded++
	}
	return players, nil
}

// playWeek signs each player in, submits their pick for the current
// week, enters results for every contest, then advances the week.
func playWeek(ctx context.Context, client *httpClient, config *Config, gen *generator, players []model.Player, history *seasonHistory, stats *Stats) error {
	var sched struct {
		Week     model.Week      `json:"week"`
		Contests []model.Contest `json:"contests"`
	}
	if err := client.getJSON(ctx, config.BaseURL+"/schedule", &sched); err != nil {
		return err
	}
	history.recordSchedule(sched.Week, sched.Contests)

	for _, p := range players {
		status, err := client.postJSON(ctx, config.BaseURL+"/session", map[string]string{"player_id": p.ID}, nil)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("sign in returned status %d", status)
		}

		contestID, ok := gen.pickContest(sched.Contests)
		if !ok {
			continue
		}
		var pick model.Pick
		status, err = client.postJSON(ctx, config.BaseURL+"/picks", map[string]any{
			"player_id":  p.ID,
			"week":       int(sched.Week),
			"contest_id": contestID,
		}, &pick)
		if err != nil {
			return err
		}
		switch status {
		case http.StatusCreated:
			stats.PicksSubmitted++
			history.recordPick(p, sched.Week, pick)
		case http.StatusConflict:
			// Locked contests can legitimately appear on a live feed.
			stats.PicksRejected++
		default:
			return fmt.Errorf("submit pick returned status %d", status)
		}
	}

	for _, c := range sched.Contests {
		u, f := gen.result()
		var res model.Result
		status, err := client.postJSON(ctx, config.BaseURL+"/results", map[string]any{
			"contest_id":     c.ID,
			"underdog_score": u,
			"favorite_score": f,
		}, &res)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("enter result returned status %d", status)
		}
		stats.ResultsEntered++
		history.recordResult(c.ID, res)
	}

	var wk struct {
		Week model.Week `json:"week"`
	}
	status, err := client.postJSON(ctx, config.BaseURL+"/week/advance", nil, &wk)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("advance week returned status %d", status)
	}
	return nil
}
