package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Jockey represents a jockey riding in one or more races.
type Jockey struct {
	bun.BaseModel `bun:"table:jockeys,alias:j"`

	JockeyID  int       `bun:"jockey_id,pk,autoincrement" json:"jockeyID"`
	Name      string    `bun:"name,notnull" json:"name"`
	URL       string    `bun:"url,notnull,unique" json:"url"`
	ScrapedAt time.Time `bun:"scraped_at,notnull" json:"-"`
}
