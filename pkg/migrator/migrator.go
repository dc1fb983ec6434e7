// Package migrator applies the goose migrations embedded by each service.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tocampus/governance/pkg/logger"
)

// Up applies every pending migration in files to dbURL and logs each one.
// files holds the .sql files at its root.
func Up(ctx context.Context, dbURL string, files fs.FS, log logger.Logger) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("migrator: open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	provider, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		return fmt.Errorf("migrator: new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"file", r.Source.Path,
			"duration_ms", r.Duration.Milliseconds(),
		)
	}
	if err != nil {
		return fmt.Errorf("migrator: up: %w", err)
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("migrator: read version: %w", err)
	}
	log.InfoContext(ctx, "database schema up to date", "version", current, "applied", len(results))
	return nil
}
