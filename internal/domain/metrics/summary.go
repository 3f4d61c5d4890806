package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// RecruitmentFigures are the pipeline counts of a period
type RecruitmentFigures struct {
	Screenings     int `json:"screenings"`
	Interviews     int `json:"interviews"`
	Hires          int `json:"hires"`
	ConversionRate int `json:"conversionRate"`
	TimeToHire     int `json:"timeToHire"`
}

// FinancialFigures are the money figures of a period
type FinancialFigures struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin int             `json:"profitMargin"`
}

// PeriodFigures holds one family's figures for a period
type PeriodFigures struct {
	Period      string              `json:"period"`
	Days        int                 `json:"days"`
	Recruitment *RecruitmentFigures `json:"recruitment,omitempty"`
	Financial   *FinancialFigures   `json:"financial,omitempty"`
}

// Summary is what a metrics view renders for a family and granularity
type Summary struct {
	Family      domain.MetricFamily `json:"family"`
	Granularity domain.Granularity  `json:"granularity"`
	Periods     []PeriodFigures     `json:"periods"`
	Totals      PeriodFigures       `json:"totals"`
}

// Summarize projects samples onto a metric family. Totals are folded from the
// samples so their ratios come from window totals as well.
func Summarize(samples []domain.MetricSample, family domain.MetricFamily, g domain.Granularity) Summary {
	periods := Aggregate(samples, g)

	out := Summary{
		Family:      family,
		Granularity: g,
		Periods:     make([]PeriodFigures, 0, len(periods)),
		Totals:      figures(Total(samples), family),
	}
	for _, p := range periods {
		out.Periods = append(out.Periods, figures(p, family))
	}
	return out
}

func figures(p domain.AggregatedPeriod, family domain.MetricFamily) PeriodFigures {
	f := PeriodFigures{Period: p.Key, Days: p.Days}
	switch family {
	case domain.FamilyFinancial:
		f.Financial = &FinancialFigures{
			Revenue:      p.Revenue,
			Profit:       p.Profit,
			ProfitMargin: p.ProfitMargin,
		}
	default:
		f.Recruitment = &RecruitmentFigures{
			Screenings:     p.Screenings,
			Interviews:     p.Interviews,
			Hires:          p.Hires,
			ConversionRate: p.ConversionRate,
			TimeToHire:     p.TimeToHire,
		}
	}
	return f
}
