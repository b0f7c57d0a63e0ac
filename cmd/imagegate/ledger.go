package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/basel-ax/imagegate/internal/config"
	"github.com/basel-ax/imagegate/internal/logging"
	"github.com/basel-ax/imagegate/internal/repository"
)

// openLedger connects to the ledger database and makes sure its table exists
func openLedger(ctx context.Context, cfg *config.Config) (*sql.DB, *repository.PostgresGenerationRepository, error) {
	logging.Info("initializing ledger database", "host", cfg.DB.Host, "database", cfg.DB.Database)

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := repository.NewPostgresGenerationRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	logging.Info("ledger database ready")
	return db, repo, nil
}
