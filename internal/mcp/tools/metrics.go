package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/domain/metrics"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

// MetricsAggregateParams defines the arguments for the metrics_aggregate tool
type MetricsAggregateParams struct {
	Granularity string `json:"granularity,omitempty" jsonschema:"daily, weekly or monthly (default daily)"`
}

// MetricsAggregateResult is the structured response of metrics_aggregate
type MetricsAggregateResult struct {
	Granularity domain.Granularity        `json:"granularity"`
	Periods     []domain.AggregatedPeriod `json:"periods"`
}

// MetricsSummaryParams defines the arguments for the metrics_summary tool
type MetricsSummaryParams struct {
	Family      string `json:"family" jsonschema:"recruitment or financial"`
	Granularity string `json:"granularity,omitempty" jsonschema:"daily, weekly or monthly (default weekly)"`
}

type metricsTools struct {
	service metrics.Service
	logger  *logging.Logger
}

// WithMetricsTools registers the period aggregation tools
func WithMetricsTools(service metrics.Service) Option {
	return func(reg *registry) {
		if service == nil {
			reg.logger.Warn("metrics service not configured, metrics tools skipped")
			return
		}
		t := metricsTools{service: service, logger: reg.logger.Named("metrics")}

		addTool(reg, &sdkmcp.Tool{
			Name:        "metrics_aggregate",
			Description: "Aggregate the daily recruitment metrics window into daily, weekly or monthly periods",
		}, t.aggregate)
		addTool(reg, &sdkmcp.Tool{
			Name:        "metrics_summary",
			Description: "Summarize recruitment or financial figures per period with window totals",
		}, t.summary)
	}
}

func (t metricsTools) aggregate(ctx context.Context, _ *sdkmcp.CallToolRequest, params *MetricsAggregateParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &MetricsAggregateParams{}
	}
	g, err := parseGranularity(params.Granularity, domain.GranularityDaily)
	if err != nil {
		return nil, nil, err
	}

	periods, err := t.service.Aggregate(ctx, g)
	if err != nil {
		t.logger.Error("metrics_aggregate failed", "granularity", g, "err", err)
		return nil, nil, fmt.Errorf("aggregate metrics: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[metrics_aggregate] %d %s period(s)", len(periods), g)
	for _, p := range periods {
		fmt.Fprintf(&sb, "\n• %s: screenings=%d interviews=%d hires=%d revenue=%s profit=%s",
			p.Key, p.Screenings, p.Interviews, p.Hires, p.Revenue.StringFixed(2), p.Profit.StringFixed(2))
	}
	return textResult(sb.String()), MetricsAggregateResult{Granularity: g, Periods: periods}, nil
}

func (t metricsTools) summary(ctx context.Context, _ *sdkmcp.CallToolRequest, params *MetricsSummaryParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &MetricsSummaryParams{}
	}
	family, err := domain.ParseMetricFamily(strings.TrimSpace(params.Family))
	if err != nil {
		return nil, nil, err
	}
	g, err := parseGranularity(params.Granularity, domain.GranularityWeekly)
	if err != nil {
		return nil, nil, err
	}

	summary, err := t.service.Summary(ctx, family, g)
	if err != nil {
		t.logger.Error("metrics_summary failed", "family", family, "granularity", g, "err", err)
		return nil, nil, fmt.Errorf("summarize metrics: %w", err)
	}

	msg := fmt.Sprintf("[metrics_summary] %s figures over %d %s period(s)", family, len(summary.Periods), g)
	if r := summary.Totals.Recruitment; r != nil {
		msg += fmt.Sprintf("\nTotals: screenings=%d interviews=%d hires=%d conversion=%d%% time-to-hire=%dd",
			r.Screenings, r.Interviews, r.Hires, r.ConversionRate, r.TimeToHire)
	}
	if f := summary.Totals.Financial; f != nil {
		msg += fmt.Sprintf("\nTotals: revenue=%s profit=%s margin=%d%%",
			f.Revenue.StringFixed(2), f.Profit.StringFixed(2), f.ProfitMargin)
	}
	return textResult(msg), summary, nil
}

func parseGranularity(raw string, fallback domain.Granularity) (domain.Granularity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return domain.ParseGranularity(raw)
}
