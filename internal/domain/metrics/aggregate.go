package metrics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

const dayLayout = "2006-01-02"

// Aggregate folds samples into periods of the given granularity. Periods are
// returned in order of first appearance. Daily granularity maps every sample
// to its own period.
//
// Weekly buckets are (year, month, ceil(day/7)): calendar day of month, not
// ISO weeks, so days 29-31 form a short fifth week and a bucket never spans
// two months.
func Aggregate(samples []domain.MetricSample, g domain.Granularity) []domain.AggregatedPeriod {
	keyOf := bucketKey(g)

	index := make(map[string]int)
	buckets := make([]*bucket, 0)
	for _, s := range samples {
		k := keyOf(s.Date)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, &bucket{key: k})
		}
		buckets[i].add(s)
	}

	out := make([]domain.AggregatedPeriod, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.period(g != domain.GranularityMonthly))
	}
	return out
}

// Total folds every sample into a single period keyed "total"
func Total(samples []domain.MetricSample) domain.AggregatedPeriod {
	b := &bucket{key: "total"}
	for _, s := range samples {
		b.add(s)
	}
	return b.period(len(samples) > 0)
}

func bucketKey(g domain.Granularity) func(time.Time) string {
	switch g {
	case domain.GranularityWeekly:
		return func(t time.Time) string {
			y, m, d := t.Date()
			return fmt.Sprintf("%04d-%02d-W%d", y, int(m), (d+6)/7)
		}
	case domain.GranularityMonthly:
		return func(t time.Time) string {
			return t.Format("2006-01")
		}
	default:
		return func(t time.Time) string {
			return t.Format(dayLayout)
		}
	}
}

type bucket struct {
	key        string
	start, end time.Time

	screenings, interviews, hires int
	revenue, profit               decimal.Decimal
	timeToHire                    int
	days                          int
}

func (b *bucket) add(s domain.MetricSample) {
	if b.days == 0 || s.Date.Before(b.start) {
		b.start = s.Date
	}
	if b.days == 0 || s.Date.After(b.end) {
		b.end = s.Date
	}
	b.screenings += s.Screenings
	b.interviews += s.Interviews
	b.hires += s.Hires
	b.revenue = b.revenue.Add(s.Revenue)
	b.profit = b.profit.Add(s.Profit)
	b.timeToHire += s.TimeToHire
	b.days++
}

func (b *bucket) period(withBounds bool) domain.AggregatedPeriod {
	p := domain.AggregatedPeriod{
		Key:            b.key,
		Screenings:     b.screenings,
		Interviews:     b.interviews,
		Hires:          b.hires,
		Revenue:        b.revenue,
		Profit:         b.profit,
		Days:           b.days,
		ProfitMargin:   domain.ProfitMargin(b.profit, b.revenue),
		ConversionRate: domain.ConversionRate(b.hires, b.screenings),
	}
	if b.days > 0 {
		// mean of the daily estimates, rounded half away from zero
		p.TimeToHire = int(decimal.NewFromInt(int64(b.timeToHire)).
			Div(decimal.NewFromInt(int64(b.days))).
			Round(0).
			IntPart())
	}
	if withBounds {
		start, end := b.start, b.end
		p.StartDate, p.EndDate = &start, &end
	}
	return p
}
