// Command governance applies the governance schema migrations.
//
//	go run ./migrations/governance
package main

import (
	"context"
	"embed"
	"os"

	"github.com/tocampus/governance/pkg/config"
	"github.com/tocampus/governance/pkg/logger"
	"github.com/tocampus/governance/pkg/migrator"
)

//go:embed *.sql
var migrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg)
	if err := migrator.Up(context.Background(), cfg.DatabaseURL, migrationsFS, log); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
