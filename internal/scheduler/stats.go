// Package scheduler runs periodic jobs over the registry.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"go.uber.org/zap"
)

type statsSource interface {
	Stats(ctx context.Context) entity.Stats
}

// StatsReporter logs the registry totals on a cron schedule.
type StatsReporter struct {
	source statsSource
	logger *zap.Logger
	cron   *cron.Cron
}

func NewStatsReporter(source statsSource, logger *zap.Logger) *StatsReporter {
	return &StatsReporter{
		source: source,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the report with a standard five-field cron expression and
// starts the scheduler in its own goroutine.
func (s *StatsReporter) Start(schedule string) error {
	const op = "scheduler.StatsReporter.Start"

	if _, err := s.cron.AddFunc(schedule, s.report); err != nil {
		return fmt.Errorf("%s: failed to schedule stats report: %w", op, err)
	}

	s.cron.Start()

	return nil
}

// Stop stops the scheduler and waits for a running report to finish or ctx to
// be done.
func (s *StatsReporter) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *StatsReporter) report() {
	stats := s.source.Stats(context.Background())

	s.logger.Info("URL statistics",
		zap.Int("totalUrls", stats.TotalURLs),
		zap.Int("activeUrls", stats.ActiveURLs),
		zap.Int("totalClicks", stats.TotalClicks),
	)
}
