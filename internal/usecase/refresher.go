package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"TeleshopNews/internal/domain"
	"TeleshopNews/internal/ports"
)

// Refresher is the process-wide ingestion-scheduler state: a cooldown clock
// with a single writer (the triggered run) and many readers. The trigger time
// is recorded whether the run succeeds or fails, so a persistently failing
// source is not hammered on every request.
type Refresher struct {
	ingestor ports.Ingestor
	cooldown time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	lastRun time.Time

	group singleflight.Group
	now   func() time.Time
}

// NewRefresher wires the cooldown gate around an ingestor.
func NewRefresher(ingestor ports.Ingestor, cooldown time.Duration, logger *slog.Logger) *Refresher {
	if cooldown <= 0 {
		cooldown = 30 * time.Minute
	}
	return &Refresher{
		ingestor: ingestor,
		cooldown: cooldown,
		logger:   logger,
		now:      time.Now,
	}
}

// MaybeRefresh triggers an ingestion run when the cooldown has elapsed.
// Concurrent callers collapse onto a single in-flight run; callers arriving
// inside the cooldown window return immediately. The returned flag reports
// whether this call observed a run.
func (r *Refresher) MaybeRefresh(ctx context.Context) (domain.RunResult, bool, error) {
	r.mu.Lock()
	elapsed := r.lastRun.IsZero() || r.now().Sub(r.lastRun) >= r.cooldown
	r.mu.Unlock()

	if !elapsed {
		return domain.RunResult{}, false, nil
	}

	value, err, _ := r.group.Do("ingest", func() (any, error) {
		result, runErr := r.ingestor.Run(ctx)

		r.mu.Lock()
		r.lastRun = r.now()
		r.mu.Unlock()

		if runErr != nil {
			if r.logger != nil {
				r.logger.Error("ingestion run failed", "error", runErr)
			}
			return result, runErr
		}
		return result, nil
	})

	result, _ := value.(domain.RunResult)
	return result, true, err
}

// LastRun reports when a run was last triggered; zero before the first run.
func (r *Refresher) LastRun() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun
}

// Cooldown exposes the configured window for health reporting.
func (r *Refresher) Cooldown() time.Duration {
	return r.cooldown
}
