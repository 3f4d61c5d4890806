// Package scheduler wires up the cron job that periodically exports
// aggregated metrics to Google Sheets.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/export"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

const runTimeout = 2 * time.Minute

type periodSource interface {
	Aggregate(ctx context.Context, g domain.Granularity) ([]domain.AggregatedPeriod, error)
}

type periodExporter interface {
	ExportPeriods(ctx context.Context, target export.Target, periods []domain.AggregatedPeriod, mode export.Mode) (export.Result, error)
}

// Scheduler wraps robfig/cron and manages the export loop.
type Scheduler struct {
	cron        *cron.Cron
	spec        string // cron spec, e.g. "@daily" or "0 6 * * 1"
	source      periodSource
	exporter    periodExporter
	target      export.Target
	granularity domain.Granularity
	logger      *logging.Logger
}

// New creates a Scheduler that exports weekly periods on spec
func New(spec string, source periodSource, exporter periodExporter, target export.Target, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("scheduler")
	return &Scheduler{
		cron:        cron.New(cron.WithLogger(cron.PrintfLogger(logger)), cron.WithLocation(time.UTC)),
		spec:        spec,
		source:      source,
		exporter:    exporter,
		target:      target,
		granularity: domain.GranularityWeekly,
		logger:      logger,
	}
}

// Start registers the job and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		if _, err := s.RunOnce(runCtx); err != nil {
			s.logger.Warn("scheduled export failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("cron started", "spec", s.spec, "spreadsheet_id", s.target.SpreadsheetID, "tab", s.target.Tab)
	return nil
}

// Shutdown stops the scheduler and waits for a running export
func (s *Scheduler) Shutdown(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("cron stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce aggregates the current window and replaces the export tab
func (s *Scheduler) RunOnce(ctx context.Context) (export.Result, error) {
	periods, err := s.source.Aggregate(ctx, s.granularity)
	if err != nil {
		return export.Result{}, fmt.Errorf("aggregate metrics: %w", err)
	}

	res, err := s.exporter.ExportPeriods(ctx, s.target, periods, export.ModeReplace)
	if err != nil {
		return res, err
	}

	s.logger.Info("metrics exported", "periods", len(periods), "rows", res.WrittenRows)
	return res, nil
}
