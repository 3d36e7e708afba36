package odds

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrFetch  = errors.New("odds feed fetch failed")
	ErrDecode = errors.New("odds feed decode failed")
)
