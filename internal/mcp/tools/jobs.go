package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/domain/job"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

// ListJobsParams defines the arguments for the list_jobs tool
type ListJobsParams struct {
	Caller     CallerParams `json:"caller" jsonschema:"Who is asking"`
	Text       string       `json:"text,omitempty" jsonschema:"Case-insensitive match on title, department or location"`
	Status     string       `json:"status,omitempty" jsonschema:"draft, published, in-progress, on-hold, filled, closed or all"`
	LocationID string       `json:"location_id,omitempty" jsonschema:"Location identifier or all"`
	Assignment string       `json:"assignment,omitempty" jsonschema:"assigned, unassigned or all"`
}

// ListJobsResult is the structured response of list_jobs
type ListJobsResult struct {
	Jobs  []domain.JobListing `json:"jobs"`
	Count int                 `json:"count"`
}

// JobRefParams identifies a single listing on behalf of a caller
type JobRefParams struct {
	Caller CallerParams `json:"caller" jsonschema:"Who is asking"`
	JobID  string       `json:"job_id" jsonschema:"Listing identifier"`
}

// AssignJobParams defines the arguments for the assign_job tool
type AssignJobParams struct {
	Caller       CallerParams `json:"caller" jsonschema:"Who is asking"`
	JobID        string       `json:"job_id" jsonschema:"Listing identifier"`
	AssigneeID   string       `json:"assignee_id" jsonschema:"Person receiving the listing"`
	AssigneeName string       `json:"assignee_name,omitempty" jsonschema:"Display name of the assignee"`
}

// RemoveJobResult is the structured response of remove_job
type RemoveJobResult struct {
	JobID   string `json:"job_id"`
	Removed bool   `json:"removed"`
}

// JobCandidatesResult is the structured response of job_candidates
type JobCandidatesResult struct {
	JobID      string                `json:"job_id"`
	Candidates []domain.JobCandidate `json:"candidates"`
}

// ImportJobsParams defines the arguments for the import_jobs tool
type ImportJobsParams struct {
	Caller   CallerParams `json:"caller" jsonschema:"Who is asking"`
	Query    string       `json:"query" jsonschema:"Search terms sent to the job boards"`
	Location string       `json:"location,omitempty" jsonschema:"Location filter passed to the job boards"`
	Limit    int          `json:"limit,omitempty" jsonschema:"Maximum postings per provider"`
}

type jobTools struct {
	service job.Service
	logger  *logging.Logger
}

// WithJobTools registers the catalog tools backed by service
func WithJobTools(service job.Service) Option {
	return func(reg *registry) {
		if service == nil {
			reg.logger.Warn("job service not configured, catalog tools skipped")
			return
		}
		t := jobTools{service: service, logger: reg.logger.Named("jobs")}

		addTool(reg, &sdkmcp.Tool{
			Name:        "list_jobs",
			Description: "List the job listings visible to the caller, optionally filtered by text, status, location and assignment",
		}, t.listJobs)
		addTool(reg, &sdkmcp.Tool{
			Name:        "get_job",
			Description: "Fetch one job listing visible to the caller",
		}, t.getJob)
		addTool(reg, &sdkmcp.Tool{
			Name:        "assign_job",
			Description: "Assign a job listing to a person",
		}, t.assignJob)
		addTool(reg, &sdkmcp.Tool{
			Name:        "unassign_job",
			Description: "Clear the assignee of a job listing",
		}, t.unassignJob)
		addTool(reg, &sdkmcp.Tool{
			Name:        "remove_job",
			Description: "Remove a job listing and its candidates from the catalog",
		}, t.removeJob)
		addTool(reg, &sdkmcp.Tool{
			Name:        "job_candidates",
			Description: "List the candidates who applied to a job listing",
		}, t.jobCandidates)
		addTool(reg, &sdkmcp.Tool{
			Name:        "import_jobs",
			Description: "Search external job boards and store the postings as draft listings",
		}, t.importJobs)
	}
}

func (t jobTools) listJobs(ctx context.Context, _ *sdkmcp.CallToolRequest, params *ListJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &ListJobsParams{}
	}
	caller, err := params.Caller.toDomain()
	if err != nil {
		return nil, nil, err
	}

	jobs, err := t.service.Search(ctx, caller, job.Filter{
		Text:       params.Text,
		Status:     params.Status,
		LocationID: params.LocationID,
		Assignment: params.Assignment,
	})
	if err != nil {
		t.logger.Error("list_jobs failed", "caller_id", caller.ID, "err", err)
		return nil, nil, fmt.Errorf("list jobs: %w", err)
	}

	t.logger.Debug("list_jobs", "caller_id", caller.ID, "role", caller.Role, "count", len(jobs))

	result := ListJobsResult{Jobs: jobs, Count: len(jobs)}
	return textResult(formatJobs(jobs)), result, nil
}

func (t jobTools) getJob(ctx context.Context, _ *sdkmcp.CallToolRequest, params *JobRefParams) (*sdkmcp.CallToolResult, any, error) {
	caller, id, err := jobRef(params)
	if err != nil {
		return nil, nil, err
	}

	listing, err := t.service.Get(ctx, caller, id)
	if err != nil {
		return t.fail("get_job", err)
	}
	return textResult(formatJob(*listing)), listing, nil
}

func (t jobTools) assignJob(ctx context.Context, _ *sdkmcp.CallToolRequest, params *AssignJobParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		return nil, nil, errCallerRequired
	}
	caller, id, err := jobRef(&JobRefParams{Caller: params.Caller, JobID: params.JobID})
	if err != nil {
		return nil, nil, err
	}

	listing, err := t.service.Assign(ctx, caller, id, job.Grantee{
		ID:   strings.TrimSpace(params.AssigneeID),
		Name: strings.TrimSpace(params.AssigneeName),
	})
	if err != nil {
		return t.fail("assign_job", err)
	}

	msg := fmt.Sprintf("[assign_job] %s assigned to %s", listing.ID, displayAssignee(*listing))
	return textResult(msg), listing, nil
}

func (t jobTools) unassignJob(ctx context.Context, _ *sdkmcp.CallToolRequest, params *JobRefParams) (*sdkmcp.CallToolResult, any, error) {
	caller, id, err := jobRef(params)
	if err != nil {
		return nil, nil, err
	}

	listing, err := t.service.Unassign(ctx, caller, id)
	if err != nil {
		return t.fail("unassign_job", err)
	}
	return textResult(fmt.Sprintf("[unassign_job] %s is now unassigned", listing.ID)), listing, nil
}

func (t jobTools) removeJob(ctx context.Context, _ *sdkmcp.CallToolRequest, params *JobRefParams) (*sdkmcp.CallToolResult, any, error) {
	caller, id, err := jobRef(params)
	if err != nil {
		return nil, nil, err
	}

	if err := t.service.Remove(ctx, caller, id); err != nil {
		return t.fail("remove_job", err)
	}
	return textResult(fmt.Sprintf("[remove_job] %s removed", id)), RemoveJobResult{JobID: id, Removed: true}, nil
}

func (t jobTools) jobCandidates(ctx context.Context, _ *sdkmcp.CallToolRequest, params *JobRefParams) (*sdkmcp.CallToolResult, any, error) {
	caller, id, err := jobRef(params)
	if err != nil {
		return nil, nil, err
	}

	candidates, err := t.service.Candidates(ctx, caller, id)
	if err != nil {
		return t.fail("job_candidates", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[job_candidates] %d candidate(s) for %s", len(candidates), id)
	for _, c := range candidates {
		fmt.Fprintf(&sb, "\n• %s (%s) %s", c.Name, c.Status, c.Email)
	}
	return textResult(sb.String()), JobCandidatesResult{JobID: id, Candidates: candidates}, nil
}

func (t jobTools) importJobs(ctx context.Context, _ *sdkmcp.CallToolRequest, params *ImportJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		return nil, nil, errCallerRequired
	}
	caller, err := params.Caller.toDomain()
	if err != nil {
		return nil, nil, err
	}

	t.logger.Info("import_jobs request", "caller_id", caller.ID, "query", params.Query, "location", params.Location, "limit", params.Limit)

	result, err := t.service.Import(ctx, caller, strings.TrimSpace(params.Query), job.ImportFilters{
		Location: strings.TrimSpace(params.Location),
		Limit:    params.Limit,
	})
	if err != nil {
		return t.fail("import_jobs", err)
	}

	msg := fmt.Sprintf("[import_jobs] Imported %d draft listing(s) from %d source(s)", len(result.Jobs), result.SourceCount)
	return textResult(msg), result, nil
}

// fail logs a failed call. Refusals are expected traffic and stay at Debug.
func (t jobTools) fail(tool string, err error) (*sdkmcp.CallToolResult, any, error) {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized) {
		t.logger.Debug(tool+" refused", "err", err)
	} else {
		t.logger.Error(tool+" failed", "err", err)
	}
	return nil, nil, fmt.Errorf("%s: %w", tool, err)
}

func jobRef(params *JobRefParams) (domain.Caller, domain.JobID, error) {
	if params == nil {
		return domain.Caller{}, "", errCallerRequired
	}
	caller, err := params.Caller.toDomain()
	if err != nil {
		return domain.Caller{}, "", err
	}
	id := strings.TrimSpace(params.JobID)
	if id == "" {
		return domain.Caller{}, "", fmt.Errorf("job_id is required")
	}
	return caller, id, nil
}

func formatJobs(jobs []domain.JobListing) string {
	if len(jobs) == 0 {
		return "[list_jobs] No job listings match"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[list_jobs] %d job listing(s)", len(jobs))
	for _, j := range jobs {
		fmt.Fprintf(&sb, "\n• %s: %s (%s, %s) %s", j.ID, j.Title, j.Location, j.Status, displayAssignee(j))
	}
	return sb.String()
}

func formatJob(j domain.JobListing) string {
	return fmt.Sprintf("[get_job] %s: %s\nDepartment: %s\nLocation: %s\nStatus: %s\nPriority: %s\nAssigned: %s\nApplicants: %d",
		j.ID, j.Title, j.Department, j.Location, j.Status, j.Priority, displayAssignee(j), j.ApplicantsCount)
}

func displayAssignee(j domain.JobListing) string {
	if !j.IsAssigned() {
		return "unassigned"
	}
	if j.AssignedToName != nil && *j.AssignedToName != "" {
		return *j.AssignedToName
	}
	return *j.AssignedTo
}
