package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race represents a single race within a meet.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	RaceID         int       `bun:"race_id,pk,autoincrement" json:"raceID"`
	MeetID         int       `bun:"meet_id,notnull,unique:races_no_dupes" json:"meetID"`
	Number         int       `bun:"number,notnull,unique:races_no_dupes" json:"number"`
	Name           string    `bun:"name,notnull" json:"name"`
	StartTime      time.Time `bun:"start_time,notnull" json:"startTime"`
	Distance       int       `bun:"distance,notnull" json:"distance"`
	TrackCondition string    `bun:"track_condition,notnull" json:"trackCondition"`
	Prize          *float64  `bun:"prize" json:"prize,omitempty"`
	URL            string    `bun:"url,notnull" json:"url"`
	ScrapedAt      time.Time `bun:"scraped_at,notnull" json:"-"`

	Meet *Meet `bun:"rel:belongs-to,join:meet_id=meet_id" json:"-"`
}
