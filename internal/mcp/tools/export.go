package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/domain/job"
	"github.com/honeycarbs/recruit-ops/internal/domain/metrics"
	"github.com/honeycarbs/recruit-ops/internal/export"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

// Exporter writes rows to a spreadsheet tab
type Exporter interface {
	ExportJobs(ctx context.Context, target export.Target, jobs []domain.JobListing, mode export.Mode) (export.Result, error)
	ExportPeriods(ctx context.Context, target export.Target, periods []domain.AggregatedPeriod, mode export.Mode) (export.Result, error)
}

const (
	exportSourceJobs    = "jobs"
	exportSourceMetrics = "metrics"
)

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Source        string        `json:"source" jsonschema:"jobs or metrics"`
	SpreadsheetID string        `json:"spreadsheet_id,omitempty" jsonschema:"Target spreadsheet; defaults to the configured one"`
	Tab           string        `json:"tab,omitempty" jsonschema:"Target tab name"`
	Mode          string        `json:"mode,omitempty" jsonschema:"replace (default) or append"`
	Caller        *CallerParams `json:"caller,omitempty" jsonschema:"Required for jobs; rows are limited to what the caller can see"`
	Filter        job.Filter    `json:"filter,omitempty" jsonschema:"Optional job filter"`
	Granularity   string        `json:"granularity,omitempty" jsonschema:"Period size for metrics (default weekly)"`
}

type exportTool struct {
	exporter Exporter
	jobs     job.Service
	metrics  metrics.Service
	defaults export.Target
	logger   *logging.Logger
}

// WithSheetsExport registers the sheets_export tool. defaults fills the
// spreadsheet and tab when a call leaves them empty.
func WithSheetsExport(exporter Exporter, jobs job.Service, metricsSvc metrics.Service, defaults export.Target) Option {
	return func(reg *registry) {
		if exporter == nil {
			reg.logger.Warn("sheets exporter not configured, sheets_export skipped")
			return
		}
		t := exportTool{
			exporter: exporter,
			jobs:     jobs,
			metrics:  metricsSvc,
			defaults: defaults,
			logger:   reg.logger.Named("export"),
		}
		addTool(reg, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export the caller's job listings or aggregated metric periods to a Google Sheets tab",
		}, t.handle)
	}
}

func (t exportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &SheetsExportParams{}
	}

	target := export.Target{
		SpreadsheetID: firstNonEmpty(params.SpreadsheetID, t.defaults.SpreadsheetID),
		Tab:           firstNonEmpty(params.Tab, t.defaults.Tab),
	}
	mode := export.ModeReplace
	switch strings.TrimSpace(params.Mode) {
	case "", string(export.ModeReplace):
	case string(export.ModeAppend):
		mode = export.ModeAppend
	default:
		return nil, nil, fmt.Errorf("unknown export mode %q", params.Mode)
	}

	var (
		result export.Result
		err    error
	)
	switch strings.TrimSpace(params.Source) {
	case exportSourceJobs:
		result, err = t.exportJobs(ctx, params, target, mode)
	case exportSourceMetrics:
		result, err = t.exportMetrics(ctx, params, target, mode)
	default:
		return nil, nil, fmt.Errorf("source must be %q or %q", exportSourceJobs, exportSourceMetrics)
	}
	if err != nil {
		t.logger.Warn("sheets_export failed", "source", params.Source, "spreadsheet_id", target.SpreadsheetID, "err", err)
		return nil, nil, err
	}

	t.logger.Info("sheets_export completed", "source", params.Source, "tab", result.Tab, "rows", result.WrittenRows)

	msg := fmt.Sprintf("[sheets_export] %s: wrote %d row(s) to %s!%s", params.Source, result.WrittenRows, result.SpreadsheetID, result.Tab)
	return textResult(msg), result, nil
}

func (t exportTool) exportJobs(ctx context.Context, params *SheetsExportParams, target export.Target, mode export.Mode) (export.Result, error) {
	if t.jobs == nil {
		return export.Result{}, fmt.Errorf("job service not configured")
	}
	if params.Caller == nil {
		return export.Result{}, errCallerRequired
	}
	caller, err := params.Caller.toDomain()
	if err != nil {
		return export.Result{}, err
	}

	jobs, err := t.jobs.Search(ctx, caller, params.Filter)
	if err != nil {
		return export.Result{}, fmt.Errorf("load jobs: %w", err)
	}
	return t.exporter.ExportJobs(ctx, target, jobs, mode)
}

func (t exportTool) exportMetrics(ctx context.Context, params *SheetsExportParams, target export.Target, mode export.Mode) (export.Result, error) {
	if t.metrics == nil {
		return export.Result{}, fmt.Errorf("metrics service not configured")
	}
	g, err := parseGranularity(params.Granularity, domain.GranularityWeekly)
	if err != nil {
		return export.Result{}, err
	}

	periods, err := t.metrics.Aggregate(ctx, g)
	if err != nil {
		return export.Result{}, fmt.Errorf("aggregate metrics: %w", err)
	}
	return t.exporter.ExportPeriods(ctx, target, periods, mode)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
