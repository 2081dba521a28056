package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/noah-isme/rite-edu-api/pkg/config"
	"github.com/noah-isme/rite-edu-api/pkg/database"
	"github.com/noah-isme/rite-edu-api/pkg/logger"
)

func main() {
	steps := flag.Int("steps", 0, "apply N migrations (negative rolls back); 0 means all the way up")
	down := flag.Bool("down", false, "roll back every migration")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	m, err := migrate.New(cfg.Migrations.Path, database.URL(cfg.Database))
	if err != nil {
		logr.Sugar().Fatalw("migrate init failed", "source", cfg.Migrations.Path, "error", err)
	}
	defer m.Close()

	switch {
	case *down:
		err = m.Down()
	case *steps != 0:
		err = m.Steps(*steps)
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logr.Sugar().Errorw("migration failed", "error", err)
		os.Exit(1)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		logr.Sugar().Warnw("could not read schema version", "error", verr)
		return
	}
	logr.Sugar().Infow("migrations applied", "version", version, "dirty", dirty)
}
