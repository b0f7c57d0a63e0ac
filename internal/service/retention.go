package service

import (
	"context"
	"fmt"
	"time"
)

// GenerationPruner deletes ledger rows created before a cutoff
type GenerationPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionService trims the generation ledger to a fixed window
type RetentionService struct {
	pruner    GenerationPruner
	retention time.Duration
	now       func() time.Time
}

// NewRetentionService creates a retention service keeping rows newer than retention
func NewRetentionService(pruner GenerationPruner, retention time.Duration) *RetentionService {
	return &RetentionService{
		pruner:    pruner,
		retention: retention,
		now:       time.Now,
	}
}

// Prune deletes expired rows and reports how many were removed
func (s *RetentionService) Prune(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, fmt.Errorf("retention must be positive, got %s", s.retention)
	}

	cutoff := s.now().Add(-s.retention)
	n, err := s.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune generations before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}
