package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/domain/job"
	"github.com/honeycarbs/recruit-ops/internal/domain/metrics"
	"github.com/honeycarbs/recruit-ops/internal/export"
	"github.com/honeycarbs/recruit-ops/internal/storage/memory"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

var (
	admin   = CallerParams{ID: "usr-root", Name: "Root", Role: "company-admin"}
	manager = CallerParams{ID: "usr-hm", Name: "Hana", Role: "hiring-manager"}
	alice   = CallerParams{ID: "usr-alice", Name: "Alice Moreau", Role: "talent-scout"}
	ben     = CallerParams{ID: "usr-ben", Name: "Ben Okafor", Role: "team-member"}
)

func newJobTools(t *testing.T) (jobTools, *memory.CatalogStore) {
	t.Helper()
	store := memory.NewDemoCatalog(testNow)
	svc, err := job.NewService(
		job.WithRepository(store),
		job.WithCandidates(store),
		job.WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	return jobTools{service: svc, logger: logging.NewNop()}, store
}

func newMetricsService(t *testing.T) metrics.Service {
	t.Helper()
	svc, err := metrics.NewService(
		metrics.WithSource(metrics.NewGenerator(42)),
		metrics.WithWindowDays(14),
		metrics.WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	return svc
}

func ids(jobs []domain.JobListing) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestCallerParams_ToDomain(t *testing.T) {
	c, err := CallerParams{ID: " usr-1 ", Role: "hiring-manager"}.toDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{ID: "usr-1", Role: domain.RoleHiringManager}, c)

	_, err = CallerParams{Role: "company-admin"}.toDomain()
	assert.ErrorIs(t, err, errCallerRequired)

	_, err = CallerParams{ID: "usr-1", Role: "ceo"}.toDomain()
	assert.Error(t, err)
}

func TestListJobs_CallerLocationIgnored(t *testing.T) {
	tools, _ := newJobTools(t)

	var params ListJobsParams
	raw := `{"caller": {"id": "usr-hm", "role": "hiring-manager", "location_id": "loc-ber"}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &params))

	_, out, err := tools.listJobs(context.Background(), nil, &params)
	require.NoError(t, err)
	result, ok := out.(ListJobsResult)
	require.True(t, ok)
	assert.Equal(t, []string{"job-001", "job-003", "job-006"}, ids(result.Jobs))
}

func TestListJobs(t *testing.T) {
	tools, _ := newJobTools(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params ListJobsParams
		want   []string
	}{
		{name: "admin sees everything", params: ListJobsParams{Caller: admin}, want: []string{"job-001", "job-002", "job-003", "job-004", "job-005", "job-006"}},
		{name: "manager sees home location", params: ListJobsParams{Caller: manager}, want: []string{"job-001", "job-003", "job-006"}},
		{name: "scout sees own assignments", params: ListJobsParams{Caller: alice}, want: []string{"job-001", "job-006"}},
		{name: "filters apply after scope", params: ListJobsParams{Caller: admin, Text: "engineer", Assignment: "assigned"}, want: []string{"job-001", "job-005"}},
		{name: "text matches location", params: ListJobsParams{Caller: admin, Text: "BERLIN"}, want: []string{"job-002", "job-005"}},
		{name: "unknown status ignored", params: ListJobsParams{Caller: manager, Status: "bogus"}, want: []string{"job-001", "job-003", "job-006"}},
		{name: "applicant sees nothing", params: ListJobsParams{Caller: CallerParams{ID: "usr-x", Role: "applicant"}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			res, out, err := tools.listJobs(ctx, nil, &params)
			require.NoError(t, err)
			require.NotNil(t, res)

			result, ok := out.(ListJobsResult)
			require.True(t, ok)
			assert.Equal(t, tt.want, ids(result.Jobs))
			assert.Equal(t, len(tt.want), result.Count)
		})
	}
}

func TestListJobs_RequiresCaller(t *testing.T) {
	tools, _ := newJobTools(t)

	_, _, err := tools.listJobs(context.Background(), nil, nil)
	assert.ErrorIs(t, err, errCallerRequired)
}

func TestGetJob_OutsideScopeIsNotFound(t *testing.T) {
	tools, _ := newJobTools(t)
	ctx := context.Background()

	_, out, err := tools.getJob(ctx, nil, &JobRefParams{Caller: alice, JobID: "job-001"})
	require.NoError(t, err)
	assert.Equal(t, "job-001", out.(*domain.JobListing).ID)

	_, _, err = tools.getJob(ctx, nil, &JobRefParams{Caller: alice, JobID: "job-002"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = tools.getJob(ctx, nil, &JobRefParams{Caller: alice, JobID: " "})
	assert.Error(t, err)
}

func TestAssignAndUnassign(t *testing.T) {
	tools, store := newJobTools(t)
	ctx := context.Background()

	res, out, err := tools.assignJob(ctx, nil, &AssignJobParams{Caller: manager, JobID: "job-003", AssigneeID: "usr-ben", AssigneeName: "Ben Okafor"})
	require.NoError(t, err)
	assert.Contains(t, res.Content[0].(*sdkmcp.TextContent).Text, "Ben Okafor")
	listing := out.(*domain.JobListing)
	assert.Equal(t, "usr-ben", listing.AssignedToID())
	assert.Equal(t, testNow, listing.UpdatedAt)

	stored, err := store.FindByID(ctx, "job-003")
	require.NoError(t, err)
	assert.Equal(t, "usr-ben", stored.AssignedToID())

	_, out, err = tools.unassignJob(ctx, nil, &JobRefParams{Caller: ben, JobID: "job-003"})
	require.NoError(t, err)
	assert.False(t, out.(*domain.JobListing).IsAssigned())
}

func TestAssignJob_Refusals(t *testing.T) {
	tools, _ := newJobTools(t)
	ctx := context.Background()

	_, _, err := tools.assignJob(ctx, nil, &AssignJobParams{Caller: ben, JobID: "job-001", AssigneeID: "usr-ben"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	var authErr *domain.AuthorizationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.RoleTeamMember, authErr.Role)

	_, _, err = tools.assignJob(ctx, nil, &AssignJobParams{Caller: admin, JobID: "job-404", AssigneeID: "usr-ben"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = tools.assignJob(ctx, nil, &AssignJobParams{Caller: admin, JobID: "job-001"})
	assert.ErrorIs(t, err, job.ErrInvalidGrantee)
}

func TestRemoveJob_CascadesCandidates(t *testing.T) {
	tools, store := newJobTools(t)
	ctx := context.Background()

	_, _, err := tools.removeJob(ctx, nil, &JobRefParams{Caller: alice, JobID: "job-001"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, out, err := tools.removeJob(ctx, nil, &JobRefParams{Caller: admin, JobID: "job-001"})
	require.NoError(t, err)
	assert.Equal(t, RemoveJobResult{JobID: "job-001", Removed: true}, out)

	_, err = store.FindByID(ctx, "job-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	candidates, err := store.FindByJob(ctx, "job-001")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestJobCandidates(t *testing.T) {
	tools, _ := newJobTools(t)
	ctx := context.Background()

	res, out, err := tools.jobCandidates(ctx, nil, &JobRefParams{Caller: alice, JobID: "job-001"})
	require.NoError(t, err)
	result := out.(JobCandidatesResult)
	assert.Len(t, result.Candidates, 3)
	assert.Contains(t, res.Content[0].(*sdkmcp.TextContent).Text, "3 candidate(s)")

	_, _, err = tools.jobCandidates(ctx, nil, &JobRefParams{Caller: alice, JobID: "job-002"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportJobs_NoProviders(t *testing.T) {
	tools, _ := newJobTools(t)
	ctx := context.Background()

	_, _, err := tools.importJobs(ctx, nil, &ImportJobsParams{Caller: alice, Query: "golang"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = tools.importJobs(ctx, nil, &ImportJobsParams{Caller: admin, Query: "golang"})
	assert.Error(t, err)
}

func TestMetricsAggregate(t *testing.T) {
	tools := metricsTools{service: newMetricsService(t), logger: logging.NewNop()}
	ctx := context.Background()

	tests := []struct {
		granularity string
		wantKeys    []string
	}{
		{granularity: "weekly", wantKeys: []string{"2024-02-W4", "2024-02-W5", "2024-03-W1", "2024-03-W2"}},
		{granularity: "monthly", wantKeys: []string{"2024-02", "2024-03"}},
	}
	for _, tt := range tests {
		t.Run(tt.granularity, func(t *testing.T) {
			_, out, err := tools.aggregate(ctx, nil, &MetricsAggregateParams{Granularity: tt.granularity})
			require.NoError(t, err)

			result := out.(MetricsAggregateResult)
			keys := make([]string, 0, len(result.Periods))
			days := 0
			for _, p := range result.Periods {
				keys = append(keys, p.Key)
				days += p.Days
			}
			assert.Equal(t, tt.wantKeys, keys)
			assert.Equal(t, 14, days)
		})
	}

	t.Run("daily by default", func(t *testing.T) {
		_, out, err := tools.aggregate(ctx, nil, nil)
		require.NoError(t, err)
		assert.Len(t, out.(MetricsAggregateResult).Periods, 14)
	})

	t.Run("unknown granularity", func(t *testing.T) {
		_, _, err := tools.aggregate(ctx, nil, &MetricsAggregateParams{Granularity: "hourly"})
		assert.Error(t, err)
	})
}

func TestMetricsSummary(t *testing.T) {
	tools := metricsTools{service: newMetricsService(t), logger: logging.NewNop()}
	ctx := context.Background()

	_, out, err := tools.summary(ctx, nil, &MetricsSummaryParams{Family: "financial"})
	require.NoError(t, err)
	summary := out.(metrics.Summary)
	assert.Equal(t, domain.GranularityWeekly, summary.Granularity)
	require.NotNil(t, summary.Totals.Financial)
	assert.Nil(t, summary.Totals.Recruitment)
	assert.Len(t, summary.Periods, 4)

	_, _, err = tools.summary(ctx, nil, &MetricsSummaryParams{Family: "marketing"})
	assert.Error(t, err)
}

type fakeExporter struct {
	target  export.Target
	mode    export.Mode
	jobs    []domain.JobListing
	periods []domain.AggregatedPeriod
}

func (f *fakeExporter) ExportJobs(_ context.Context, target export.Target, jobs []domain.JobListing, mode export.Mode) (export.Result, error) {
	f.target, f.mode, f.jobs = target, mode, jobs
	return export.Result{SpreadsheetID: target.SpreadsheetID, Tab: target.Tab, WrittenRows: len(jobs) + 1}, nil
}

func (f *fakeExporter) ExportPeriods(_ context.Context, target export.Target, periods []domain.AggregatedPeriod, mode export.Mode) (export.Result, error) {
	f.target, f.mode, f.periods = target, mode, periods
	return export.Result{SpreadsheetID: target.SpreadsheetID, Tab: target.Tab, WrittenRows: len(periods) + 1}, nil
}

func TestSheetsExport(t *testing.T) {
	jobs, _ := newJobTools(t)
	exporter := &fakeExporter{}
	tool := exportTool{
		exporter: exporter,
		jobs:     jobs.service,
		metrics:  newMetricsService(t),
		defaults: export.Target{SpreadsheetID: "sheet-default", Tab: "Metrics"},
		logger:   logging.NewNop(),
	}
	ctx := context.Background()

	t.Run("jobs are scoped to the caller", func(t *testing.T) {
		_, out, err := tool.handle(ctx, nil, &SheetsExportParams{Source: "jobs", Tab: "Jobs", Mode: "append", Caller: &manager})
		require.NoError(t, err)
		assert.Equal(t, []string{"job-001", "job-003", "job-006"}, ids(exporter.jobs))
		assert.Equal(t, export.Target{SpreadsheetID: "sheet-default", Tab: "Jobs"}, exporter.target)
		assert.Equal(t, export.ModeAppend, exporter.mode)
		assert.Equal(t, 4, out.(export.Result).WrittenRows)
	})

	t.Run("jobs require a caller", func(t *testing.T) {
		_, _, err := tool.handle(ctx, nil, &SheetsExportParams{Source: "jobs"})
		assert.ErrorIs(t, err, errCallerRequired)
	})

	t.Run("metrics default to weekly replace", func(t *testing.T) {
		_, _, err := tool.handle(ctx, nil, &SheetsExportParams{Source: "metrics", SpreadsheetID: "other"})
		require.NoError(t, err)
		assert.Len(t, exporter.periods, 4)
		assert.Equal(t, export.ModeReplace, exporter.mode)
		assert.Equal(t, export.Target{SpreadsheetID: "other", Tab: "Metrics"}, exporter.target)
	})

	t.Run("bad arguments", func(t *testing.T) {
		_, _, err := tool.handle(ctx, nil, &SheetsExportParams{Source: "candidates"})
		assert.Error(t, err)
		_, _, err = tool.handle(ctx, nil, &SheetsExportParams{Source: "metrics", Mode: "merge"})
		assert.Error(t, err)
	})
}

func TestRolesResourceHandler(t *testing.T) {
	res, err := RolesResourceHandler(job.DefaultScopeConfig())(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, RolesURI, res.Contents[0].URI)

	var payload RolesPayload
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &payload))
	require.Len(t, payload.Roles, len(domain.Roles))

	first := payload.Roles[0]
	assert.Equal(t, domain.RoleCompanyAdmin, first.Role)
	assert.Equal(t, job.ScopeAll, first.Scope)
	assert.True(t, first.CanManage)

	last := payload.Roles[len(payload.Roles)-1]
	assert.Equal(t, domain.RoleApplicant, last.Role)
	assert.Equal(t, job.ScopeNone, last.Scope)
	assert.False(t, last.CanManage)
	assert.Equal(t, []string{"applications"}, last.Menu)
}

func TestRegister(t *testing.T) {
	jobs, _ := newJobTools(t)
	metricsSvc := newMetricsService(t)
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0.0.0"}, nil)

	names := Register(server, logging.NewNop(),
		WithJobTools(jobs.service),
		WithMetricsTools(metricsSvc),
		WithSheetsExport(&fakeExporter{}, jobs.service, metricsSvc, export.Target{}),
		WithRolesResource(job.DefaultScopeConfig()),
		nil,
	)

	assert.Equal(t, []string{
		"list_jobs", "get_job", "assign_job", "unassign_job", "remove_job",
		"job_candidates", "import_jobs", "metrics_aggregate", "metrics_summary",
		"sheets_export", RolesURI,
	}, names)
}

func TestRegister_SkipsMissingServices(t *testing.T) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0.0.0"}, nil)

	names := Register(server, nil, WithJobTools(nil), WithMetricsTools(nil), WithSheetsExport(nil, nil, nil, export.Target{}))
	assert.Empty(t, names)
}
