package adzuna

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	jobdomain "github.com/honeycarbs/recruit-ops/internal/domain/job"
	"github.com/honeycarbs/recruit-ops/pkg/adzuna"
)

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, query string, params adzuna.SearchParams) ([]adzuna.Job, error)
}

// Provider implements job.Provider using Adzuna API
type Provider struct {
	client searchClient
}

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "adzuna"
}

// Search queries Adzuna and maps postings onto draft listings
func (p *Provider) Search(ctx context.Context, query string, filters jobdomain.ImportFilters) ([]domain.JobListing, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("adzuna provider: client is nil")
	}

	postings, err := p.client.SearchJobs(ctx, query, adzuna.SearchParams{
		Location: filters.Location,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.JobListing, 0, len(postings))
	for _, j := range postings {
		out = append(out, toListing(j))
	}
	return out, nil
}

var _ jobdomain.Provider = (*Provider)(nil)

func toListing(j adzuna.Job) domain.JobListing {
	department := j.Category
	if department == "" {
		department = "Unassigned"
	}

	desc := j.Description
	if j.CompanyName != "" {
		desc = strings.TrimSpace(fmt.Sprintf("Client: %s\n\n%s", j.CompanyName, desc))
	}

	listing := domain.JobListing{
		ID:           "adzuna-" + j.ID,
		Title:        j.Title,
		Description:  desc,
		Department:   department,
		DepartmentID: "dep-" + slugify(department),
		Location:     j.Location,
		LocationID:   "loc-" + slugify(j.Location),
		Status:       domain.JobStatusDraft,
		Priority:     domain.PriorityMedium,
	}

	if j.SalaryMax > 0 {
		budget := decimal.NewFromFloat(j.SalaryMax).Round(2)
		listing.Compensation = &domain.Compensation{ClientBudget: budget}
	}

	return listing
}

// slugify lowercases s and joins its alphanumeric runs with dashes
func slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.Join(fields, "-")
}
