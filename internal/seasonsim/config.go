// Package seasonsim drives a synthetic pool season against a running
// server and verifies the standings the server reports.
package seasonsim

import "time"

// Config controls a simulation run.
type Config struct {
	BaseURL string
	Players int
	Weeks   int
	Seed    int64
	Timeout time.Duration
	Verbose bool
}

// Stats accumulates counters for the final report.
type Stats struct {
	PlayersAdded   int
	PicksSubmitted int
	PicksRejected  int
	ResultsEntered int
	WeeksPlayed    int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
