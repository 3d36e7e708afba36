// Package types contains common types used across the application
package types

// Standing represents one row of the ranked leaderboard. Wins and covers
// are informational breakdowns; points alone decide the ordering.
type Standing struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Points   float64 `json:"points"`
	Wins     int     `json:"wins"`
	Covers   int     `json:"covers"`
}
