package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Horse represents a racehorse. URL is the profile page the horse was
// scraped from and doubles as the key performances are fetched against.
type Horse struct {
	bun.BaseModel `bun:"table:horses,alias:h"`

	HorseID   int        `bun:"horse_id,pk,autoincrement" json:"horseID"`
	Name      string     `bun:"name,notnull" json:"name"`
	URL       string     `bun:"url,notnull,unique" json:"url"`
	Foaled    *time.Time `bun:"foaled,type:date" json:"foaled,omitempty"`
	Sire      *string    `bun:"sire" json:"sire,omitempty"`
	Dam       *string    `bun:"dam" json:"dam,omitempty"`
	ScrapedAt time.Time  `bun:"scraped_at,notnull" json:"-"`
}
