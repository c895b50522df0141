package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/formstats/config"
	"github.com/padraicbc/formstats/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order, then the lookup
// indexes the history queries lean on.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Meet)(nil),
		(*models.Race)(nil),
		(*models.Horse)(nil),
		(*models.Jockey)(nil),
		(*models.Trainer)(nil),
		(*models.Runner)(nil),
		(*models.Performance)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS performances_horse_url ON performances (horse_url)`,
		`CREATE INDEX IF NOT EXISTS performances_horse_url_scraped ON performances (horse_url, scraped_at)`,
		`CREATE INDEX IF NOT EXISTS performances_jockey_url ON performances (jockey_url)`,
		`CREATE INDEX IF NOT EXISTS runners_race_id ON runners (race_id)`,
		`CREATE INDEX IF NOT EXISTS races_meet_id ON races (meet_id)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("index: %v", err)
		}
	}

	return nil
}
