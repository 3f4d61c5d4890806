package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/domain/metrics"
)

var _ metrics.Source = (*MetricsSource)(nil)

// Schema is the table MetricsSource reads. One row per calendar day.
const Schema = `
CREATE TABLE IF NOT EXISTS daily_metrics (
    day           date PRIMARY KEY,
    screenings    integer NOT NULL DEFAULT 0 CHECK (screenings >= 0),
    interviews    integer NOT NULL DEFAULT 0 CHECK (interviews >= 0),
    hires         integer NOT NULL DEFAULT 0 CHECK (hires >= 0),
    revenue       numeric(14, 2) NOT NULL DEFAULT 0,
    profit        numeric(14, 2) NOT NULL DEFAULT 0,
    time_to_hire  integer NOT NULL DEFAULT 0
)`

const selectSamples = `
	SELECT day, screenings, interviews, hires,
	       revenue::text, profit::text, time_to_hire
	FROM daily_metrics
	WHERE day BETWEEN $1 AND $2
	ORDER BY day`

// querier is the subset of pgxpool.Pool used here
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// MetricsSource reads daily samples from Postgres
type MetricsSource struct {
	db querier
}

// NewMetricsSource creates a source backed by a pool or connection
func NewMetricsSource(db querier) *MetricsSource {
	return &MetricsSource{db: db}
}

// Samples returns the stored days in [from, to]. Missing days are skipped.
func (s *MetricsSource) Samples(ctx context.Context, from, to time.Time) ([]domain.MetricSample, error) {
	rows, err := s.db.Query(ctx, selectSamples, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("daily_metrics query: %w", err)
	}
	defer rows.Close()

	samples := make([]domain.MetricSample, 0)
	for rows.Next() {
		sample, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily_metrics rows: %w", err)
	}
	return samples, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema creates daily_metrics when missing
func EnsureSchema(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create daily_metrics: %w", err)
	}
	return nil
}

func scanSample(row pgx.Row) (domain.MetricSample, error) {
	var (
		day                           time.Time
		screenings, interviews, hires int
		revenueText, profitText       string
		timeToHire                    int
	)
	if err := row.Scan(&day, &screenings, &interviews, &hires, &revenueText, &profitText, &timeToHire); err != nil {
		return domain.MetricSample{}, fmt.Errorf("daily_metrics scan: %w", err)
	}

	revenue, err := decimal.NewFromString(revenueText)
	if err != nil {
		return domain.MetricSample{}, fmt.Errorf("daily_metrics revenue %q: %w", revenueText, err)
	}
	profit, err := decimal.NewFromString(profitText)
	if err != nil {
		return domain.MetricSample{}, fmt.Errorf("daily_metrics profit %q: %w", profitText, err)
	}

	y, m, d := day.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return domain.NewMetricSample(date, screenings, interviews, hires, revenue, profit, timeToHire), nil
}
