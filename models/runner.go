package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Runner represents a horse/jockey/trainer combination entered in a race.
// Weight is the official listed weight in kg; JockeyClaiming is the
// apprentice allowance deducted from it. Both are nullable because cards
// are often published before weights are declared.
type Runner struct {
	bun.BaseModel `bun:"table:runners,alias:rn"`

	RunnerID       int       `bun:"runner_id,pk,autoincrement" json:"runnerID"`
	RaceID         int       `bun:"race_id,notnull,unique:runners_no_dupes" json:"raceID"`
	HorseID        int       `bun:"horse_id,notnull" json:"horseID"`
	JockeyID       *int      `bun:"jockey_id" json:"jockeyID,omitempty"`
	TrainerID      *int      `bun:"trainer_id" json:"trainerID,omitempty"`
	Number         int       `bun:"number,notnull,unique:runners_no_dupes" json:"number"`
	Barrier        *int      `bun:"barrier" json:"barrier,omitempty"`
	Weight         *float64  `bun:"weight" json:"weight,omitempty"`
	JockeyClaiming *float64  `bun:"jockey_claiming" json:"jockeyClaiming,omitempty"`
	ScrapedAt      time.Time `bun:"scraped_at,notnull" json:"-"`

	Race    *Race    `bun:"rel:belongs-to,join:race_id=race_id" json:"-"`
	Horse   *Horse   `bun:"rel:belongs-to,join:horse_id=horse_id" json:"-"`
	Jockey  *Jockey  `bun:"rel:belongs-to,join:jockey_id=jockey_id" json:"-"`
	Trainer *Trainer `bun:"rel:belongs-to,join:trainer_id=trainer_id" json:"-"`
}
