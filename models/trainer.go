package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Trainer holds trainer identity and notes.
type Trainer struct {
	bun.BaseModel `bun:"table:trainers,alias:t"`

	TrainerID int       `bun:"trainer_id,pk,autoincrement" json:"trainerID"`
	Name      string    `bun:"name,notnull" json:"name"`
	URL       string    `bun:"url,notnull,unique" json:"url"`
	Info      *string   `bun:"info" json:"info,omitempty"`
	ScrapedAt time.Time `bun:"scraped_at,notnull" json:"-"`
}
