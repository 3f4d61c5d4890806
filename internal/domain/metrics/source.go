package metrics

import (
	"context"
	"time"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// Source produces one sample per calendar day. Implementations return samples
// ordered by date for the inclusive range [from, to].
type Source interface {
	Samples(ctx context.Context, from, to time.Time) ([]domain.MetricSample, error)
}

// day truncates t to midnight UTC
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
