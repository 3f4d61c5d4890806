package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

// Mode decides whether an export replaces the tab or appends to it
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAppend  Mode = "append"
)

const defaultTab = "Sheet1"

// ErrNotConfigured is returned when no Sheets client is available
var ErrNotConfigured = errors.New("sheets export not configured (SHEETS_CREDENTIALS_PATH not set)")

// valuesWriter is the subset of the Sheets client used by the exporter
type valuesWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, cellRange string, values [][]any) (int, error)
	UpdateValues(ctx context.Context, spreadsheetID, cellRange string, values [][]any) (int, error)
	ClearValues(ctx context.Context, spreadsheetID, cellRange string) error
}

// Target names the spreadsheet tab to write
type Target struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Tab           string `json:"tab,omitempty"`
}

// Result summarizes an export
type Result struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab"`
	WrittenRows   int       `json:"written_rows"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message"`
}

// SheetsExporter writes listings and metric periods to Google Sheets
type SheetsExporter struct {
	client valuesWriter
	logger *logging.Logger
	clock  func() time.Time
}

// NewSheetsExporter creates an exporter. A nil client yields ErrNotConfigured
// on every export.
func NewSheetsExporter(client valuesWriter, logger *logging.Logger) *SheetsExporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SheetsExporter{client: client, logger: logger, clock: time.Now}
}

// ExportJobs writes one row per listing
func (e *SheetsExporter) ExportJobs(ctx context.Context, target Target, jobs []domain.JobListing, mode Mode) (Result, error) {
	return e.write(ctx, target, JobHeader, JobRows(jobs), mode)
}

// ExportPeriods writes one row per aggregated period
func (e *SheetsExporter) ExportPeriods(ctx context.Context, target Target, periods []domain.AggregatedPeriod, mode Mode) (Result, error) {
	return e.write(ctx, target, PeriodHeader, PeriodRows(periods), mode)
}

func (e *SheetsExporter) write(ctx context.Context, target Target, header []any, rows [][]any, mode Mode) (Result, error) {
	tab := target.Tab
	if tab == "" {
		tab = defaultTab
	}
	result := Result{SpreadsheetID: target.SpreadsheetID, Tab: tab}

	if e.client == nil {
		return result, ErrNotConfigured
	}
	if target.SpreadsheetID == "" {
		return result, fmt.Errorf("sheets: spreadsheet id is required")
	}

	var (
		written int
		err     error
	)
	switch mode {
	case ModeAppend:
		if len(rows) == 0 {
			result.CompletedAt = e.clock().UTC()
			result.Message = "no rows to export"
			return result, nil
		}
		written, err = e.client.AppendValues(ctx, target.SpreadsheetID, fmt.Sprintf("%s!A1", tab), rows)
		if err != nil {
			return result, fmt.Errorf("sheets: failed to append rows: %w", err)
		}
	default:
		if err := e.client.ClearValues(ctx, target.SpreadsheetID, fmt.Sprintf("%s!A1:Z", tab)); err != nil {
			return result, fmt.Errorf("sheets: failed to clear sheet: %w", err)
		}
		values := append([][]any{header}, rows...)
		written, err = e.client.UpdateValues(ctx, target.SpreadsheetID, fmt.Sprintf("%s!A1", tab), values)
		if err != nil {
			return result, fmt.Errorf("sheets: failed to write rows: %w", err)
		}
		// header row
		if written > 0 {
			written--
		}
	}

	result.WrittenRows = written
	result.CompletedAt = e.clock().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", written)

	e.logger.Info("sheets export completed",
		"spreadsheet_id", target.SpreadsheetID,
		"tab", tab,
		"rows", written,
		"mode", string(mode),
	)

	return result, nil
}
