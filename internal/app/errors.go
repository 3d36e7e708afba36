package app

import "errors"

// Sentinel rejection kinds for pool mutations. Callers distinguish the
// lock rejection (surfaced to the user) from the no-active-player case,
// which presentation layers acknowledge and ignore.
var (
	ErrNoActivePlayer = errors.New("no active player")
	ErrEmptyName      = errors.New("player name must not be empty")
	ErrNotSignedIn    = errors.New("player is not signed in")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownContest = errors.New("contest not in week schedule")
	ErrContestLocked  = errors.New("kickoff reached; picks are locked")
)
