package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MetricSample is one day of recruitment and financial activity. Samples are
// immutable once produced.
type MetricSample struct {
	Date           time.Time       `json:"date"`
	Screenings     int             `json:"screenings"`
	Interviews     int             `json:"interviews"`
	Hires          int             `json:"hires"`
	Revenue        decimal.Decimal `json:"revenue"`
	Profit         decimal.Decimal `json:"profit"`
	ProfitMargin   int             `json:"profitMargin"`
	ConversionRate int             `json:"conversionRate"`
	TimeToHire     int             `json:"timeToHire"`
}

// NewMetricSample fills the derived ratio fields from the raw counts
func NewMetricSample(date time.Time, screenings, interviews, hires int, revenue, profit decimal.Decimal, timeToHire int) MetricSample {
	return MetricSample{
		Date:           date,
		Screenings:     screenings,
		Interviews:     interviews,
		Hires:          hires,
		Revenue:        revenue,
		Profit:         profit,
		ProfitMargin:   ProfitMargin(profit, revenue),
		ConversionRate: ConversionRate(hires, screenings),
		TimeToHire:     timeToHire,
	}
}

// AggregatedPeriod is a weekly or monthly rollup of samples. Ratios are
// derived from the summed totals.
type AggregatedPeriod struct {
	Key            string          `json:"period"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	Screenings     int             `json:"screenings"`
	Interviews     int             `json:"interviews"`
	Hires          int             `json:"hires"`
	Revenue        decimal.Decimal `json:"revenue"`
	Profit         decimal.Decimal `json:"profit"`
	Days           int             `json:"days"`
	ProfitMargin   int             `json:"profitMargin"`
	ConversionRate int             `json:"conversionRate"`
	TimeToHire     int             `json:"timeToHire"`
}

// ProfitMargin returns floor(profit/revenue*100), or 0 when revenue is zero
func ProfitMargin(profit, revenue decimal.Decimal) int {
	if revenue.IsZero() {
		return 0
	}
	return int(profit.Mul(decimal.NewFromInt(100)).Div(revenue).Floor().IntPart())
}

// ConversionRate returns floor(hires/screenings*100), or 0 when screenings is zero
func ConversionRate(hires, screenings int) int {
	if screenings == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(hires) * 100).
		Div(decimal.NewFromInt(int64(screenings))).
		Floor().
		IntPart())
}

// Granularity selects the bucket size of an aggregation
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity converts a raw string to a Granularity
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(s)
	switch g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// MetricFamily groups the figures a dashboard shows together
type MetricFamily string

const (
	FamilyRecruitment MetricFamily = "recruitment"
	FamilyFinancial   MetricFamily = "financial"
)

// ParseMetricFamily converts a raw string to a MetricFamily
func ParseMetricFamily(s string) (MetricFamily, error) {
	f := MetricFamily(s)
	switch f {
	case FamilyRecruitment, FamilyFinancial:
		return f, nil
	}
	return "", fmt.Errorf("unknown metric family %q", s)
}
