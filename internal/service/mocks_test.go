package service

import (
	"context"
	"time"

	"github.com/basel-ax/imagegate/internal/domain"
)

type mockPredictor struct {
	predictFunc func(ctx context.Context, apiKey, prompt string) (string, error)
	calls       int
}

func (m *mockPredictor) Predict(ctx context.Context, apiKey, prompt string) (string, error) {
	m.calls++
	if m.predictFunc != nil {
		return m.predictFunc(ctx, apiKey, prompt)
	}
	return "", nil
}

type mockRecorder struct {
	records []domain.Generation
	err     error
}

func (m *mockRecorder) Record(ctx context.Context, g domain.Generation) error {
	m.records = append(m.records, g)
	return m.err
}

type mockPruner struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (m *mockPruner) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.cutoff = cutoff
	return m.deleted, m.err
}
