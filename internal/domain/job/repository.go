package job

import (
	"context"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// Repository is the job catalog store. Implementations return listings in a
// stable order and return a *domain.NotFoundError for missing ids.
type Repository interface {
	// LoadAll returns the full catalog snapshot
	LoadAll(ctx context.Context) ([]domain.JobListing, error)

	// FindByID loads a single listing
	FindByID(ctx context.Context, id domain.JobID) (*domain.JobListing, error)

	// FindByLocation returns listings whose LocationID matches
	FindByLocation(ctx context.Context, locationID string) ([]domain.JobListing, error)

	// FindByAssignee returns listings assigned to the person
	FindByAssignee(ctx context.Context, personID domain.PersonID) ([]domain.JobListing, error)

	// Save creates or replaces a listing by ID
	Save(ctx context.Context, listing domain.JobListing) error

	// Delete removes a listing
	Delete(ctx context.Context, id domain.JobID) error
}

// CandidateRepository stores applicants keyed by their owning listing
type CandidateRepository interface {
	FindByJob(ctx context.Context, jobID domain.JobID) ([]domain.JobCandidate, error)
	DeleteByJob(ctx context.Context, jobID domain.JobID) error
}
