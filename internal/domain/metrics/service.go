package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

// DefaultWindowDays is the dashboard look-back window
const DefaultWindowDays = 90

// Service serves aggregated metrics over a trailing window
type Service interface {
	Samples(ctx context.Context) ([]domain.MetricSample, error)
	Aggregate(ctx context.Context, g domain.Granularity) ([]domain.AggregatedPeriod, error)
	Summary(ctx context.Context, family domain.MetricFamily, g domain.Granularity) (Summary, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	source     Source
	windowDays int
	logger     *logging.Logger
	clock      func() time.Time
}

// WithSource sets the sample source
func WithSource(src Source) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithWindowDays sets how many days, ending today, are aggregated
func WithWindowDays(days int) Option {
	return func(c *config) {
		c.windowDays = days
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		windowDays: DefaultWindowDays,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.source == nil {
		return nil, fmt.Errorf("metrics.Service: source is required")
	}
	if cfg.windowDays <= 0 {
		return nil, fmt.Errorf("metrics.Service: window must be positive, got %d days", cfg.windowDays)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &service{
		source:     cfg.source,
		windowDays: cfg.windowDays,
		logger:     cfg.logger,
		clock:      cfg.clock,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(source Source, windowDays int, logger *logging.Logger) (Service, error) {
	return NewService(
		WithSource(source),
		WithWindowDays(windowDays),
		WithLogger(logger),
	)
}

type service struct {
	source     Source
	windowDays int
	logger     *logging.Logger
	clock      func() time.Time
}

// Samples loads the window ending today
func (s *service) Samples(ctx context.Context) ([]domain.MetricSample, error) {
	to := day(s.clock())
	from := to.AddDate(0, 0, -(s.windowDays - 1))

	samples, err := s.source.Samples(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load metric samples: %w", err)
	}

	s.logger.Debug("metric samples loaded",
		"from", from.Format(dayLayout),
		"to", to.Format(dayLayout),
		"count", len(samples),
	)
	return samples, nil
}

// Aggregate rolls the window up by granularity
func (s *service) Aggregate(ctx context.Context, g domain.Granularity) ([]domain.AggregatedPeriod, error) {
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(samples, g), nil
}

// Summary returns one family's figures per period plus window totals
func (s *service) Summary(ctx context.Context, family domain.MetricFamily, g domain.Granularity) (Summary, error) {
	samples, err := s.Samples(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(samples, family, g), nil
}
