package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/weather-forecast-gateway/internal/weather"
)

// Refresher re-fetches and caches the forecast for a location.
type Refresher interface {
	Refresh(ctx context.Context, q weather.Query) error
}

// Purger drops stale cache entries.
type Purger interface {
	Purge() int
}

// Scheduler keeps the forecast cache warm for a fixed set of locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	purger    Purger
	locations []string
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(locations []string, interval time.Duration, refresher Refresher, purger Purger, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		purger:    purger,
		locations: locations,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger,
	}
}

// Start schedules the warm-up job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	if _, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce purges expired entries and refreshes every configured location.
func (s *Scheduler) RunOnce() {
	s.logger.Debug("scheduler: running forecast warm-up job")

	if s.purger != nil {
		if n := s.purger.Purge(); n > 0 {
			s.logger.Debug("scheduler: purged expired forecasts", zap.Int("count", n))
		}
	}

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if err := s.refresher.Refresh(ctx, weather.Query{Text: loc}); err != nil {
				s.logger.Warn("scheduler: refresh failed", zap.String("location", loc), zap.Error(err))
			}
		}()
	}
	wg.Wait()
	s.logger.Debug("scheduler: completed forecast warm-up job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
