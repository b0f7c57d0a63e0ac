package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/basel-ax/imagegate/internal/logging"
)

// Job is one scheduled unit of work
type Job func(ctx context.Context)

// Scheduler runs jobs on cron specs that include a seconds field
type Scheduler struct {
	cron *cron.Cron
	mu   sync.Mutex
}

// New creates a stopped scheduler
func New() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithSeconds())}
}

// Add registers job under spec. Runs never overlap across jobs.
func (s *Scheduler) Add(ctx context.Context, name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if ctx.Err() != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		logging.Debug("running scheduled job", "job", name)
		job(ctx)
		logging.Debug("finished scheduled job", "job", name)
	})
	if err != nil {
		return fmt.Errorf("error scheduling %s with %q: %w", name, spec, err)
	}
	return nil
}

// Run starts the scheduler and blocks until ctx is cancelled, then waits for
// a running job to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	logging.Info("cron scheduler started")

	<-ctx.Done()
	<-s.cron.Stop().Done()
	logging.Info("cron scheduler stopped")
}
