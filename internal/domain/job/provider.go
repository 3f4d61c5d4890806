package job

import (
	"context"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// ImportFilters narrow an external listing search
type ImportFilters struct {
	Location string
	Limit    int
}

// Provider represents an external job data source (Adzuna, a partner ATS, ...)
type Provider interface {
	// e.g. "adzuna"
	Name() string

	// Search returns listings normalized to draft, unassigned records
	Search(ctx context.Context, query string, filters ImportFilters) ([]domain.JobListing, error)
}
