// Package store is the data-access layer: bun-backed queries over the racing
// entities, fetch-or-scrape caching of performance histories, and the cascade
// deletes the rest of the system relies on.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/formstats/models"
)

// Scraper fetches performance histories from the upstream form site. The
// protocol lives with the implementation; the store only cares that it
// returns complete chronological histories for a profile URL.
type Scraper interface {
	ScrapeHorsePerformances(ctx context.Context, horseURL string) ([]models.Performance, error)
	ScrapeJockeyPerformances(ctx context.Context, jockeyURL string) ([]models.Performance, error)
}

// Store wraps the database connection and the optional scrape collaborator.
// A nil scraper means cached data only. maxAge > 0 re-scrapes a cached
// history once its newest row is older than that; zero keeps cached rows
// forever.
type Store struct {
	db      *bun.DB
	scraper Scraper
	maxAge  time.Duration
}

// New creates a Store. scraper may be nil.
func New(db *bun.DB, scraper Scraper, maxAge time.Duration) *Store {
	return &Store{db: db, scraper: scraper, maxAge: maxAge}
}

// stale reports whether a cached row scraped at scrapedAt should be
// refreshed against the given expiry. A zero expiry never expires.
func stale(scrapedAt, expiry time.Time) bool {
	if expiry.IsZero() {
		return false
	}
	return scrapedAt.Before(expiry)
}

// newestScrape returns the most recent ScrapedAt across the rows.
func newestScrape(perfs []models.Performance) time.Time {
	var newest time.Time
	for _, p := range perfs {
		if p.ScrapedAt.After(newest) {
			newest = p.ScrapedAt
		}
	}
	return newest
}

// MeetsByDate returns all meets on the given date.
func (s *Store) MeetsByDate(ctx context.Context, date time.Time) ([]models.Meet, error) {
	var meets []models.Meet
	err := s.db.NewSelect().Model(&meets).
		Where("date = ?", date.Format("2006-01-02")).
		OrderExpr("track ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("meets by date: %w", err)
	}
	return meets, nil
}

// RacesByMeet returns the meet's races in running order.
func (s *Store) RacesByMeet(ctx context.Context, meetID int) ([]models.Race, error) {
	var races []models.Race
	err := s.db.NewSelect().Model(&races).
		Where("meet_id = ?", meetID).
		OrderExpr("number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("races by meet: %w", err)
	}
	return races, nil
}

// RunnersByRace returns the race's runners ordered by saddle number.
func (s *Store) RunnersByRace(ctx context.Context, raceID int) ([]models.Runner, error) {
	var runners []models.Runner
	err := s.db.NewSelect().Model(&runners).
		Where("rn.race_id = ?", raceID).
		OrderExpr("rn.number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("runners by race: %w", err)
	}
	return runners, nil
}

// Runner loads one runner with its race, meet, horse, jockey and trainer.
func (s *Store) Runner(ctx context.Context, runnerID int) (*models.Runner, error) {
	runner := new(models.Runner)
	err := s.db.NewSelect().Model(runner).
		Relation("Race").
		Relation("Race.Meet").
		Relation("Horse").
		Relation("Jockey").
		Relation("Trainer").
		Where("rn.runner_id = ?", runnerID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("runner %d: %w", runnerID, err)
	}
	return runner, nil
}

// Horse loads one horse by ID.
func (s *Store) Horse(ctx context.Context, horseID int) (*models.Horse, error) {
	horse := new(models.Horse)
	err := s.db.NewSelect().Model(horse).
		Where("horse_id = ?", horseID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("horse %d: %w", horseID, err)
	}
	return horse, nil
}

// PerformancesByHorse returns the horse's full history, most recent first.
// Cached rows are used when present; otherwise the scraper is invoked and
// its results persisted before returning.
func (s *Store) PerformancesByHorse(ctx context.Context, horse *models.Horse) ([]models.Performance, error) {
	return s.performances(ctx, "horse_url", horse.URL, func(ctx context.Context) ([]models.Performance, error) {
		return s.scraper.ScrapeHorsePerformances(ctx, horse.URL)
	})
}

// PerformancesByJockey returns the jockey's full mount history, most recent
// first, with the same fetch-or-scrape semantics as PerformancesByHorse.
func (s *Store) PerformancesByJockey(ctx context.Context, jockey *models.Jockey) ([]models.Performance, error) {
	return s.performances(ctx, "jockey_url", jockey.URL, func(ctx context.Context) ([]models.Performance, error) {
		return s.scraper.ScrapeJockeyPerformances(ctx, jockey.URL)
	})
}

func (s *Store) performances(ctx context.Context, col, url string, scrape func(context.Context) ([]models.Performance, error)) ([]models.Performance, error) {
	var perfs []models.Performance
	err := s.db.NewSelect().Model(&perfs).
		Where("? = ?", bun.Ident(col), url).
		OrderExpr("date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("performances by %s: %w", col, err)
	}
	if s.scraper == nil {
		return perfs, nil
	}
	if len(perfs) > 0 {
		var expiry time.Time
		if s.maxAge > 0 {
			expiry = time.Now().Add(-s.maxAge)
		}
		if !stale(newestScrape(perfs), expiry) {
			return perfs, nil
		}
	}

	scraped, err := scrape(ctx)
	if err != nil {
		return nil, fmt.Errorf("scrape performances: %w", err)
	}
	if len(scraped) == 0 {
		return perfs, nil
	}

	now := time.Now()
	for i := range scraped {
		scraped[i].ScrapedAt = now
	}
	if _, err := s.db.NewInsert().Model(&scraped).
		On("CONFLICT DO NOTHING").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("store scraped performances: %w", err)
	}
	zap.L().Info("scraped performances", zap.String(col, url), zap.Int("count", len(scraped)))

	// Re-read so concurrent scrapes of overlapping histories stay consistent.
	perfs = nil
	err = s.db.NewSelect().Model(&perfs).
		Where("? = ?", bun.Ident(col), url).
		OrderExpr("date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("re-read performances: %w", err)
	}
	return perfs, nil
}

// DeleteHorse removes a horse together with its performances and race
// entries. Performances must never outlive their horse.
func (s *Store) DeleteHorse(ctx context.Context, horseID int) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		horse := new(models.Horse)
		if err := tx.NewSelect().Model(horse).Where("horse_id = ?", horseID).Scan(ctx); err != nil {
			return fmt.Errorf("load horse %d: %w", horseID, err)
		}
		if _, err := tx.NewDelete().Model((*models.Performance)(nil)).
			Where("horse_url = ?", horse.URL).Exec(ctx); err != nil {
			return fmt.Errorf("delete performances: %w", err)
		}
		if _, err := tx.NewDelete().Model((*models.Runner)(nil)).
			Where("horse_id = ?", horseID).Exec(ctx); err != nil {
			return fmt.Errorf("delete runners: %w", err)
		}
		if _, err := tx.NewDelete().Model(horse).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("delete horse: %w", err)
		}
		return nil
	})
}

// DeleteRace removes a race and its runners.
func (s *Store) DeleteRace(ctx context.Context, raceID int) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Runner)(nil)).
			Where("race_id = ?", raceID).Exec(ctx); err != nil {
			return fmt.Errorf("delete runners: %w", err)
		}
		if _, err := tx.NewDelete().Model((*models.Race)(nil)).
			Where("race_id = ?", raceID).Exec(ctx); err != nil {
			return fmt.Errorf("delete race: %w", err)
		}
		return nil
	})
}

// DeleteMeet removes a meet, its races and their runners.
func (s *Store) DeleteMeet(ctx context.Context, meetID int) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Runner)(nil)).
			Where("race_id IN (SELECT race_id FROM races WHERE meet_id = ?)", meetID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete runners: %w", err)
		}
		if _, err := tx.NewDelete().Model((*models.Race)(nil)).
			Where("meet_id = ?", meetID).Exec(ctx); err != nil {
			return fmt.Errorf("delete races: %w", err)
		}
		if _, err := tx.NewDelete().Model((*models.Meet)(nil)).
			Where("meet_id = ?", meetID).Exec(ctx); err != nil {
			return fmt.Errorf("delete meet: %w", err)
		}
		return nil
	})
}
