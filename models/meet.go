package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Meet represents a racing event at one track on one date.
type Meet struct {
	bun.BaseModel `bun:"table:meets,alias:m"`

	MeetID    int       `bun:"meet_id,pk,autoincrement" json:"meetID"`
	Track     string    `bun:"track,notnull" json:"track"`
	Date      time.Time `bun:"date,notnull,type:date" json:"date"`
	URL       string    `bun:"url,notnull" json:"url"`
	ScrapedAt time.Time `bun:"scraped_at,notnull" json:"-"`
}
