// Package lockout decides whether a contest still accepts pick changes.
package lockout

import "time"

// Locked reports whether picks for a contest are closed: true once now
// is at or past kickoff. The comparison is exact; there is no grace
// period and no clock-skew tolerance. Callers supply the instant so the
// decision stays pure and testable without a real clock.
func Locked(kickoff, now time.Time) bool {
	return !now.Before(kickoff)
}
