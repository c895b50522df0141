// cmd/importer/main.go
// Imports a legacy MySQL form database into the local PostgreSQL database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/formdata?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/importer
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/formstats/config"
	bundb "github.com/padraicbc/formstats/db"
	"github.com/padraicbc/formstats/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/formdata?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// Disable FK enforcement so we can load in bulk without strict ordering
	if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"users", func() (int, error) { return importUsers(ctx, myDB, pgDB) }},
		{"meets", func() (int, error) { return importMeets(ctx, myDB, pgDB) }},
		{"races", func() (int, error) { return importRaces(ctx, myDB, pgDB) }},
		{"horses", func() (int, error) { return importHorses(ctx, myDB, pgDB) }},
		{"jockeys", func() (int, error) { return importJockeys(ctx, myDB, pgDB) }},
		{"trainers", func() (int, error) { return importTrainers(ctx, myDB, pgDB) }},
		{"runners", func() (int, error) { return importRunners(ctx, myDB, pgDB) }},
		{"performances", func() (int, error) { return importPerformances(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("import %s: %v", s.name, err)
		}
		log.Printf("%-14s  %d rows imported", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("import complete")
}

// --- helpers ---

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func nullTime(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	return &n.Time
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// copyRows streams a legacy query into Postgres in batches, one scan func per
// table shape.
func copyRows[T any](ctx context.Context, myDB *sql.DB, pgDB *bun.DB, query string, scan func(*sql.Rows) (T, error)) (int, error) {
	rows, err := myDB.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []T
	total := 0
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

// --- per-table imports ---

func importUsers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT id, username, password, createdAt FROM users",
		func(rows *sql.Rows) (models.User, error) {
			var r models.User
			err := rows.Scan(&r.ID, &r.Username, &r.Password, &r.CreatedAt)
			return r, err
		})
}

func importMeets(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT meetID, track, date, url, scrapedAt FROM meets",
		func(rows *sql.Rows) (models.Meet, error) {
			var r models.Meet
			err := rows.Scan(&r.MeetID, &r.Track, &r.Date, &r.URL, &r.ScrapedAt)
			return r, err
		})
}

func importRaces(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT raceID, meetID, number, name, startTime, distance,
		        trackCondition, prize, url, scrapedAt
		 FROM races`,
		func(rows *sql.Rows) (models.Race, error) {
			var (
				r     models.Race
				prize sql.NullFloat64
			)
			err := rows.Scan(&r.RaceID, &r.MeetID, &r.Number, &r.Name, &r.StartTime,
				&r.Distance, &r.TrackCondition, &prize, &r.URL, &r.ScrapedAt)
			r.Prize = nullFloat(prize)
			return r, err
		})
}

func importHorses(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT horseID, name, url, foaled, sire, dam, scrapedAt FROM horses",
		func(rows *sql.Rows) (models.Horse, error) {
			var (
				r         models.Horse
				foaled    sql.NullTime
				sire, dam sql.NullString
			)
			err := rows.Scan(&r.HorseID, &r.Name, &r.URL, &foaled, &sire, &dam, &r.ScrapedAt)
			r.Foaled = nullTime(foaled)
			r.Sire = nullStr(sire)
			r.Dam = nullStr(dam)
			return r, err
		})
}

func importJockeys(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT jockeyID, name, url, scrapedAt FROM jockeys",
		func(rows *sql.Rows) (models.Jockey, error) {
			var r models.Jockey
			err := rows.Scan(&r.JockeyID, &r.Name, &r.URL, &r.ScrapedAt)
			return r, err
		})
}

func importTrainers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT trainerID, name, url, info, scrapedAt FROM trainers",
		func(rows *sql.Rows) (models.Trainer, error) {
			var (
				r    models.Trainer
				info sql.NullString
			)
			err := rows.Scan(&r.TrainerID, &r.Name, &r.URL, &info, &r.ScrapedAt)
			r.Info = nullStr(info)
			return r, err
		})
}

func importRunners(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT runnerID, raceID, horseID, jockeyID, trainerID, number,
		        barrier, weight, jockeyClaiming, scrapedAt
		 FROM runners`,
		func(rows *sql.Rows) (models.Runner, error) {
			var (
				r                 models.Runner
				jockeyID, trainer sql.NullInt64
				barrier           sql.NullInt64
				weight, claiming  sql.NullFloat64
			)
			err := rows.Scan(&r.RunnerID, &r.RaceID, &r.HorseID, &jockeyID, &trainer,
				&r.Number, &barrier, &weight, &claiming, &r.ScrapedAt)
			r.JockeyID = nullInt(jockeyID)
			r.TrainerID = nullInt(trainer)
			r.Barrier = nullInt(barrier)
			r.Weight = nullFloat(weight)
			r.JockeyClaiming = nullFloat(claiming)
			return r, err
		})
}

func importPerformances(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT performanceID, horseURL, jockeyURL, track, trackCondition, date,
		        distance, result, starters, startingPrice, prizeMoney, momentum, scrapedAt
		 FROM performances`,
		func(rows *sql.Rows) (models.Performance, error) {
			var (
				r         models.Performance
				jockeyURL sql.NullString
				result    sql.NullInt64
				sp, prize sql.NullFloat64
				momentum  sql.NullFloat64
			)
			err := rows.Scan(&r.PerformanceID, &r.HorseURL, &jockeyURL, &r.Track,
				&r.TrackCondition, &r.Date, &r.Distance, &result, &r.Starters,
				&sp, &prize, &momentum, &r.ScrapedAt)
			r.JockeyURL = nullStr(jockeyURL)
			r.Result = nullInt(result)
			r.StartingPrice = nullFloat(sp)
			r.PrizeMoney = nullFloat(prize)
			r.Momentum = nullFloat(momentum)
			return r, err
		})
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"users_id_seq", "users", "id"},
		{"meets_meet_id_seq", "meets", "meet_id"},
		{"races_race_id_seq", "races", "race_id"},
		{"horses_horse_id_seq", "horses", "horse_id"},
		{"jockeys_jockey_id_seq", "jockeys", "jockey_id"},
		{"trainers_trainer_id_seq", "trainers", "trainer_id"},
		{"runners_runner_id_seq", "runners", "runner_id"},
		{"performances_performance_id_seq", "performances", "performance_id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}
