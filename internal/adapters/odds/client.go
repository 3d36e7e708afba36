// Package odds fetches the weekly contest schedule from the odds feed.
package odds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/underdog/internal/domain/model"
	"github.com/okian/underdog/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL = "https://api.the-odds-api.com"
	defaultTimeout = 10 * time.Second
)

// Provider supplies the contest schedule for the active week. On failure
// or an empty feed the caller substitutes Fallback so pick submission
// stays exercisable offline.
type Provider interface {
	FetchWeekSchedule(ctx context.Context, sportKey string) ([]model.Contest, error)
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the feed endpoint (tests, proxies).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithAPIKey sets the feed API key.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout bounds a single feed request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client talks to the-odds-api v4 spreads market.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a feed client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// feedGame mirrors the upstream odds payload for one matchup.
type feedGame struct {
	ID           string    `json:"id"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	Sites        []struct {
		Odds struct {
			Spreads struct {
				Points float64 `json:"points"`
			} `json:"spreads"`
		} `json:"odds"`
	} `json:"sites"`
}

// FetchWeekSchedule fetches the spreads market and maps each matchup to
// a Contest. The underdog is the side carrying the positive spread
// (home when the quoted line is positive, away otherwise, matching how
// the feed quotes the home side).
func (c *Client) FetchWeekSchedule(ctx context.Context, sportKey string) ([]model.Contest, error) {
	metrics.RecordScheduleFetch()

	q := url.Values{}
	q.Set("regions", "us")
	q.Set("markets", "spreads")
	q.Set("oddsFormat", "american")
	q.Set("apiKey", c.apiKey)
	endpoint := fmt.Sprintf("%s/v4/sports/%s/odds?%s", c.baseURL, url.PathEscape(sportKey), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	var games []feedGame
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	contests := make([]model.Contest, 0, len(games))
	for _, g := range games {
		var points float64
		if len(g.Sites) > 0 {
			points = g.Sites[0].Odds.Spreads.Points
		}
		underdog, favorite := g.HomeTeam, g.AwayTeam
		if points <= 0 {
			underdog, favorite = g.AwayTeam, g.HomeTeam
		}
		contests = append(contests, model.Contest{
			ID:      g.ID,
			Kickoff: g.CommenceTime,
			Underdog: model.UnderdogSide{
				Team:     underdog,
				Opponent: favorite,
				Spread:   model.SpreadFromFloat(points),
			},
		})
	}
	return contests, nil
}
