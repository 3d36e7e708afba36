// Package scoring maps a settled result and a spread to pool points.
package scoring

import (
	"math"
	"strconv"

	"github.com/okian/underdog/internal/domain/model"
)

// Point values on the fixed-point scale shared with model.Spread.
const (
	fullPoint = model.SpreadScale
	halfPoint = model.SpreadScale / 2
)

// Points is a fixed-point pool point total. Using the same int64 scale
// as model.Spread keeps the push comparison exact; accumulating float
// scores would make `u + spread == f` unreliable.
type Points int64

// Float returns the point value as a float64 for presentation.
func (p Points) Float() float64 {
	return float64(p) / fullPoint
}

func (p Points) String() string {
	return strconv.FormatFloat(p.Float(), 'f', -1, 64)
}

// Score computes the points a pick earns from a result. An unsettled or
// absent result (the zero value) scores zero, as does any non-finite
// entered score. For a settled result with underdog score u and
// favorite score f, evaluated strictly in this order:
//
//	u > f           -> 1 + spread  (outright win; spread may be any sign)
//	u + spread == f -> 0.5         (exact push against the spread)
//	u + spread > f  -> 1           (cover without the outright win)
//	otherwise       -> 0
//
// The branch order is part of the contract: outright win is checked
// before push, push before cover.
func Score(spread model.Spread, res model.Result) Points {
	if !res.Settled || !finite(res.UnderdogScore) || !finite(res.FavoriteScore) {
		return 0
	}
	u := toFixed(res.UnderdogScore)
	f := toFixed(res.FavoriteScore)
	s := int64(spread)
	switch {
	case u > f:
		return Points(fullPoint + s)
	case u+s == f:
		return halfPoint
	case u+s > f:
		return fullPoint
	default:
		return 0
	}
}

// Outright reports whether the underdog won the contest straight up.
// False for unsettled or non-finite results.
func Outright(res model.Result) bool {
	if !res.Settled || !finite(res.UnderdogScore) || !finite(res.FavoriteScore) {
		return false
	}
	return toFixed(res.UnderdogScore) > toFixed(res.FavoriteScore)
}

// Covered reports whether the underdog beat the spread (adjusted score
// strictly above the favorite's). A push does not count as a cover.
func Covered(spread model.Spread, res model.Result) bool {
	if !res.Settled || !finite(res.UnderdogScore) || !finite(res.FavoriteScore) {
		return false
	}
	return toFixed(res.UnderdogScore)+int64(spread) > toFixed(res.FavoriteScore)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func toFixed(v float64) int64 {
	return int64(math.Round(v * fullPoint))
}
