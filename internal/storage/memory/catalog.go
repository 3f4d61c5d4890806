package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/domain/job"
)

// Ensure CatalogStore implements the catalog ports
var (
	_ job.Repository          = (*CatalogStore)(nil)
	_ job.CandidateRepository = (*CatalogStore)(nil)
)

// CatalogStore is an in-memory job catalog. Listings keep insertion order.
type CatalogStore struct {
	mu         sync.RWMutex
	order      []domain.JobID
	jobs       map[domain.JobID]domain.JobListing
	candidates []domain.JobCandidate
}

// NewCatalogStore creates a store holding the given listings and candidates
func NewCatalogStore(jobs []domain.JobListing, candidates []domain.JobCandidate) *CatalogStore {
	s := &CatalogStore{
		jobs:       make(map[domain.JobID]domain.JobListing, len(jobs)),
		candidates: slices.Clone(candidates),
	}
	for _, j := range jobs {
		if _, ok := s.jobs[j.ID]; !ok {
			s.order = append(s.order, j.ID)
		}
		s.jobs[j.ID] = cloneListing(j)
	}
	return s
}

// LoadAll returns every listing in insertion order
func (s *CatalogStore) LoadAll(_ context.Context) ([]domain.JobListing, error) {
	return s.selectJobs(func(domain.JobListing) bool { return true }), nil
}

// FindByID retrieves a listing by ID
func (s *CatalogStore) FindByID(_ context.Context, id domain.JobID) (*domain.JobListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, domain.NewJobNotFound(id)
	}
	out := cloneListing(j)
	return &out, nil
}

// FindByLocation returns listings at a location
func (s *CatalogStore) FindByLocation(_ context.Context, locationID string) ([]domain.JobListing, error) {
	return s.selectJobs(func(j domain.JobListing) bool {
		return j.LocationID == locationID
	}), nil
}

// FindByAssignee returns listings assigned to a person
func (s *CatalogStore) FindByAssignee(_ context.Context, personID domain.PersonID) ([]domain.JobListing, error) {
	return s.selectJobs(func(j domain.JobListing) bool {
		return j.AssignedToID() == personID
	}), nil
}

// Save stores or replaces a listing
func (s *CatalogStore) Save(_ context.Context, listing domain.JobListing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[listing.ID]; !ok {
		s.order = append(s.order, listing.ID)
	}
	s.jobs[listing.ID] = cloneListing(listing)
	return nil
}

// Delete removes a listing
func (s *CatalogStore) Delete(_ context.Context, id domain.JobID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return domain.NewJobNotFound(id)
	}
	delete(s.jobs, id)
	s.order = slices.DeleteFunc(s.order, func(existing domain.JobID) bool {
		return existing == id
	})
	return nil
}

// FindByJob returns the candidates of a listing
func (s *CatalogStore) FindByJob(_ context.Context, jobID domain.JobID) ([]domain.JobCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.JobCandidate, 0)
	for _, c := range s.candidates {
		if c.JobID == jobID {
			out = append(out, c)
		}
	}
	return out, nil
}

// DeleteByJob drops every candidate of a listing
func (s *CatalogStore) DeleteByJob(_ context.Context, jobID domain.JobID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = slices.DeleteFunc(s.candidates, func(c domain.JobCandidate) bool {
		return c.JobID == jobID
	})
	return nil
}

func (s *CatalogStore) selectJobs(keep func(domain.JobListing) bool) []domain.JobListing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.JobListing, 0, len(s.order))
	for _, id := range s.order {
		j := s.jobs[id]
		if keep(j) {
			out = append(out, cloneListing(j))
		}
	}
	return out
}

// cloneListing copies the pointer fields so callers cannot mutate stored state
func cloneListing(j domain.JobListing) domain.JobListing {
	if j.AssignedTo != nil {
		id := *j.AssignedTo
		j.AssignedTo = &id
	}
	if j.AssignedToName != nil {
		name := *j.AssignedToName
		j.AssignedToName = &name
	}
	if j.Compensation != nil {
		c := *j.Compensation
		j.Compensation = &c
	}
	return j
}
