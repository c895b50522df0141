package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Performance is the persisted result of one past run for a horse. Rows are
// keyed by the horse's profile URL because that is what the scrape returns;
// JockeyURL is nullable since older form lines often omit the rider.
// Result is nil for undecided or abandoned races; StartingPrice, PrizeMoney
// and Momentum are nil whenever the source data lacked them. Date is never
// null.
type Performance struct {
	bun.BaseModel `bun:"table:performances,alias:p"`

	PerformanceID  int       `bun:"performance_id,pk,autoincrement" json:"performanceID"`
	HorseURL       string    `bun:"horse_url,notnull,unique:performances_no_dupes" json:"horseURL"`
	JockeyURL      *string   `bun:"jockey_url" json:"jockeyURL,omitempty"`
	Track          string    `bun:"track,notnull,unique:performances_no_dupes" json:"track"`
	TrackCondition string    `bun:"track_condition,notnull" json:"trackCondition"`
	Date           time.Time `bun:"date,notnull,type:date,unique:performances_no_dupes" json:"date"`
	Distance       int       `bun:"distance,notnull" json:"distance"`
	Result         *int      `bun:"result" json:"result,omitempty"`
	Starters       int       `bun:"starters,notnull" json:"starters"`
	StartingPrice  *float64  `bun:"starting_price" json:"startingPrice,omitempty"`
	PrizeMoney     *float64  `bun:"prize_money" json:"prizeMoney,omitempty"`
	Momentum       *float64  `bun:"momentum" json:"momentum,omitempty"`
	ScrapedAt      time.Time `bun:"scraped_at,notnull" json:"-"`
}
