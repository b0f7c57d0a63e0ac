package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/basel-ax/imagegate/internal/domain"
)

// GenerationRepository defines the interface for the generation ledger
type GenerationRepository interface {
	EnsureSchema(ctx context.Context) error
	Record(ctx context.Context, g domain.Generation) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PostgresGenerationRepository implements GenerationRepository for PostgreSQL
type PostgresGenerationRepository struct {
	db *sql.DB
}

// NewPostgresGenerationRepository creates a new PostgreSQL generation repository
func NewPostgresGenerationRepository(db *sql.DB) *PostgresGenerationRepository {
	return &PostgresGenerationRepository{db: db}
}

// EnsureSchema creates the generations table if it does not exist
func (r *PostgresGenerationRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS generations (
			id UUID PRIMARY KEY,
			prompt TEXT NOT NULL,
			outcome VARCHAR(32) NOT NULL,
			upstream_status INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS generations_created_at_idx ON generations (created_at);
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create generations table: %w", err)
	}
	return nil
}

// Record inserts one generation outcome
func (r *PostgresGenerationRepository) Record(ctx context.Context, g domain.Generation) error {
	query := `
		INSERT INTO generations (id, prompt, outcome, upstream_status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, g.ID, g.Prompt, g.Outcome, g.UpstreamStatus, g.CreatedAt)
	return err
}

// DeleteOlderThan removes generations created before cutoff
func (r *PostgresGenerationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM generations
		WHERE created_at < $1
	`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
