// Package form implements the statistical aggregation layer over a horse's
// (or jockey's) past performances: filtered performance lists, their
// null-propagating aggregates, and the per-runner derived statistics built
// on top of them. It is pure computation over already-materialised records;
// fetching and persistence live in the store package.
package form

import (
	"strings"
	"time"
)

// Track condition categories. Scraped condition strings are matched against
// these by case-insensitive prefix, so "Good4" and "good to soft" both
// count as good.
const (
	Firm      = "firm"
	Good      = "good"
	Soft      = "soft"
	Heavy     = "heavy"
	Synthetic = "synthetic"
)

// Performance is one immutable past run for a horse. Nil pointer fields mean
// the source data lacked the value: Result is nil for undecided or abandoned
// races, StartingPrice/PrizeMoney/Momentum are nil when unknown. Date is
// always set.
type Performance struct {
	HorseURL       string    `json:"horseURL"`
	JockeyURL      string    `json:"jockeyURL,omitempty"`
	Track          string    `json:"track"`
	TrackCondition string    `json:"trackCondition"`
	Date           time.Time `json:"date"`
	Distance       int       `json:"distance"`
	Result         *int      `json:"result,omitempty"`
	Starters       int       `json:"starters"`
	StartingPrice  *float64  `json:"startingPrice,omitempty"`
	PrizeMoney     *float64  `json:"prizeMoney,omitempty"`
	Momentum       *float64  `json:"momentum,omitempty"`
}

// ConditionMatches reports whether the performance's track condition falls
// into the given category by case-insensitive prefix match.
func (p Performance) ConditionMatches(category string) bool {
	return strings.HasPrefix(strings.ToUpper(p.TrackCondition), strings.ToUpper(category))
}
