package export

import (
	"time"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// JobHeader labels the columns produced by JobRows
var JobHeader = []any{
	"ID", "Title", "Department", "Location", "Status", "Priority",
	"Assigned To", "Applicants", "Client Budget", "Updated At",
}

// PeriodHeader labels the columns produced by PeriodRows
var PeriodHeader = []any{
	"Period", "Start", "End", "Days", "Screenings", "Interviews", "Hires",
	"Conversion %", "Time To Hire", "Revenue", "Profit", "Margin %",
}

// JobRows converts listings to sheet rows
func JobRows(jobs []domain.JobListing) [][]any {
	rows := make([][]any, 0, len(jobs))
	for _, j := range jobs {
		assignee := ""
		if j.AssignedToName != nil {
			assignee = *j.AssignedToName
		}
		budget := ""
		if j.Compensation != nil {
			budget = j.Compensation.ClientBudget.StringFixed(2)
		}
		rows = append(rows, []any{
			j.ID,
			j.Title,
			j.Department,
			j.Location,
			string(j.Status),
			string(j.Priority),
			assignee,
			j.ApplicantsCount,
			budget,
			formatTime(j.UpdatedAt, time.RFC3339),
		})
	}
	return rows
}

// PeriodRows converts aggregated periods to sheet rows. Monthly periods
// leave the boundary columns empty.
func PeriodRows(periods []domain.AggregatedPeriod) [][]any {
	rows := make([][]any, 0, len(periods))
	for _, p := range periods {
		start, end := "", ""
		if p.StartDate != nil {
			start = formatTime(*p.StartDate, time.DateOnly)
		}
		if p.EndDate != nil {
			end = formatTime(*p.EndDate, time.DateOnly)
		}
		rows = append(rows, []any{
			p.Key,
			start,
			end,
			p.Days,
			p.Screenings,
			p.Interviews,
			p.Hires,
			p.ConversionRate,
			p.TimeToHire,
			p.Revenue.StringFixed(2),
			p.Profit.StringFixed(2),
			p.ProfitMargin,
		})
	}
	return rows
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(layout)
}
