package metrics

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

var _ Source = (*Generator)(nil)

// Generator synthesizes plausible daily activity. Each day is drawn from a
// stream seeded by (seed, day) so overlapping windows agree.
type Generator struct {
	seed uint64
}

// NewGenerator creates a deterministic generator
func NewGenerator(seed uint64) *Generator {
	return &Generator{seed: seed}
}

// Samples returns one sample per day in [from, to]
func (g *Generator) Samples(ctx context.Context, from, to time.Time) ([]domain.MetricSample, error) {
	from, to = day(from), day(to)
	if to.Before(from) {
		return []domain.MetricSample{}, nil
	}

	out := make([]domain.MetricSample, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, g.sample(d))
	}
	return out, nil
}

// sample keeps hires <= interviews <= screenings and profit <= revenue
func (g *Generator) sample(d time.Time) domain.MetricSample {
	r := rand.New(rand.NewPCG(g.seed, uint64(d.Unix()/86400)))

	screenings := 15 + r.IntN(31)
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		screenings /= 3
	}
	interviews := screenings * (40 + r.IntN(31)) / 100
	hires := interviews * (10 + r.IntN(26)) / 100

	revenue := decimal.NewFromInt(int64(hires)*8500 + int64(2000+r.IntN(8001)))
	profit := revenue.Mul(decimal.NewFromInt(int64(15 + r.IntN(26)))).Div(decimal.NewFromInt(100)).Round(2)

	timeToHire := 18 + r.IntN(28)

	return domain.NewMetricSample(d, screenings, interviews, hires, revenue, profit, timeToHire)
}
