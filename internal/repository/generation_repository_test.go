package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basel-ax/imagegate/internal/domain"
)

func newMockRepo(t *testing.T) (*PostgresGenerationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresGenerationRepository(db), mock
}

func TestPostgresGenerationRepository_EnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS generations")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGenerationRepository_Record(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	g := domain.Generation{
		ID:             "8d3f6a52-5a43-4c0e-9d1c-2f1d1f7b0a11",
		Prompt:         "a cat wearing a hat",
		Outcome:        domain.OutcomeSuccess,
		UpstreamStatus: 200,
		CreatedAt:      created,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO generations")).
		WithArgs(g.ID, g.Prompt, g.Outcome, g.UpstreamStatus, created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Record(context.Background(), g))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGenerationRepository_RecordError(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("duplicate key")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO generations")).WillReturnError(dbErr)

	err := repo.Record(context.Background(), domain.Generation{ID: "x"})
	assert.ErrorIs(t, err, dbErr)
}

func TestPostgresGenerationRepository_DeleteOlderThan(t *testing.T) {
	repo, mock := newMockRepo(t)
	cutoff := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM generations")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
