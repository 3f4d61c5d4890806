package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

// Service exposes the catalog to callers, always scoped by caller identity
type Service interface {
	Visible(ctx context.Context, caller domain.Caller) ([]domain.JobListing, error)
	Search(ctx context.Context, caller domain.Caller, filter Filter) ([]domain.JobListing, error)
	Get(ctx context.Context, caller domain.Caller, id domain.JobID) (*domain.JobListing, error)
	Assign(ctx context.Context, caller domain.Caller, id domain.JobID, grantee Grantee) (*domain.JobListing, error)
	Unassign(ctx context.Context, caller domain.Caller, id domain.JobID) (*domain.JobListing, error)
	Remove(ctx context.Context, caller domain.Caller, id domain.JobID) error
	Candidates(ctx context.Context, caller domain.Caller, id domain.JobID) ([]domain.JobCandidate, error)
	Import(ctx context.Context, caller domain.Caller, query string, filters ImportFilters) (ImportResult, error)
	Scopes() ScopeConfig
}

// ImportResult wraps the listings created by Import
type ImportResult struct {
	Jobs        []domain.JobListing `json:"jobs"`
	ImportedAt  time.Time           `json:"imported_at"`
	SourceCount int                 `json:"source_count"`
}

// Option configures Service
type Option func(*config)

type config struct {
	repo       Repository
	candidates CandidateRepository
	providers  []Provider
	scopes     ScopeConfig
	publisher  Publisher
	logger     *logging.Logger
	clock      func() time.Time
}

// WithRepository sets the catalog repository
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithCandidates sets the candidate repository
func WithCandidates(repo CandidateRepository) Option {
	return func(c *config) {
		c.candidates = repo
	}
}

// WithProviders sets external listing providers used by Import
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = providers
	}
}

// WithScopes sets the role table
func WithScopes(scopes ScopeConfig) Option {
	return func(c *config) {
		c.scopes = scopes
	}
}

// WithPublisher sets the mutation event publisher
func WithPublisher(p Publisher) Option {
	return func(c *config) {
		c.publisher = p
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("job.Service: repository is required")
	}
	if cfg.scopes == nil {
		cfg.scopes = DefaultScopeConfig()
	}
	if cfg.publisher == nil {
		cfg.publisher = NopPublisher{}
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &service{
		repo:       cfg.repo,
		candidates: cfg.candidates,
		providers:  cfg.providers,
		scopes:     cfg.scopes,
		publisher:  cfg.publisher,
		logger:     cfg.logger,
		clock:      cfg.clock,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(
	repo Repository,
	candidates CandidateRepository,
	providers []Provider,
	scopes ScopeConfig,
	publisher Publisher,
	logger *logging.Logger,
) (Service, error) {
	return NewService(
		WithRepository(repo),
		WithCandidates(candidates),
		WithProviders(providers...),
		WithScopes(scopes),
		WithPublisher(publisher),
		WithLogger(logger),
	)
}

type service struct {
	// mu serialises read-modify-write mutations of the catalog
	mu sync.Mutex

	repo       Repository
	candidates CandidateRepository
	providers  []Provider
	scopes     ScopeConfig
	publisher  Publisher
	logger     *logging.Logger
	clock      func() time.Time
}

func (s *service) Scopes() ScopeConfig {
	return s.scopes
}

// Visible returns the caller's slice of the catalog
func (s *service) Visible(ctx context.Context, caller domain.Caller) ([]domain.JobListing, error) {
	jobs, err := loadVisible(ctx, s.repo, caller, s.scopes)
	if err != nil {
		return nil, fmt.Errorf("load visible jobs: %w", err)
	}
	return jobs, nil
}

// Search narrows the caller's visible jobs with filter
func (s *service) Search(ctx context.Context, caller domain.Caller, filter Filter) ([]domain.JobListing, error) {
	jobs, err := s.Visible(ctx, caller)
	if err != nil {
		return nil, err
	}
	return filter.Apply(jobs), nil
}

// Get returns a listing the caller can see. Listings outside the caller's
// scope are reported as not found.
func (s *service) Get(ctx context.Context, caller domain.Caller, id domain.JobID) (*domain.JobListing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(VisibleJobs([]domain.JobListing{*listing}, caller, s.scopes)) == 0 {
		return nil, domain.NewJobNotFound(id)
	}
	return listing, nil
}

// Assign hands a listing to grantee
func (s *service) Assign(ctx context.Context, caller domain.Caller, id domain.JobID, grantee Grantee) (*domain.JobListing, error) {
	return s.mutateAssignment(ctx, caller, id, &grantee)
}

// Unassign clears a listing's assignee
func (s *service) Unassign(ctx context.Context, caller domain.Caller, id domain.JobID) (*domain.JobListing, error) {
	return s.mutateAssignment(ctx, caller, id, nil)
}

func (s *service) mutateAssignment(ctx context.Context, caller domain.Caller, id domain.JobID, grantee *Grantee) (*domain.JobListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := Assign(*current, grantee, caller, s.scopes, s.clock().UTC())
	if err != nil {
		s.logger.Warn("assignment rejected", "job_id", id, "caller_id", caller.ID, "role", caller.Role, "err", err)
		return nil, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("save job %s: %w", id, err)
	}

	evt := Event{
		Type:       EventJobAssigned,
		JobID:      id,
		ActorID:    caller.ID,
		AssignedTo: updated.AssignedTo,
		At:         updated.UpdatedAt,
	}
	if grantee == nil {
		evt.Type = EventJobUnassigned
	}
	s.publish(ctx, evt)

	s.logger.Info("job assignment updated",
		"job_id", id,
		"caller_id", caller.ID,
		"assigned_to", updated.AssignedToID(),
	)

	return &updated, nil
}

// Remove deletes a listing together with its candidates. Candidates go
// first so a failure never leaves applicants pointing at a missing listing.
func (s *service) Remove(ctx context.Context, caller domain.Caller, id domain.JobID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := AuthorizeRemoval(*current, caller, s.scopes); err != nil {
		s.logger.Warn("removal rejected", "job_id", id, "caller_id", caller.ID, "role", caller.Role)
		return err
	}

	if s.candidates != nil {
		if err := s.candidates.DeleteByJob(ctx, id); err != nil {
			return fmt.Errorf("delete candidates of job %s: %w", id, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}

	s.publish(ctx, Event{
		Type:    EventJobRemoved,
		JobID:   id,
		ActorID: caller.ID,
		At:      s.clock().UTC(),
	})

	s.logger.Info("job removed", "job_id", id, "caller_id", caller.ID)
	return nil
}

// Candidates lists applicants of a listing the caller can see
func (s *service) Candidates(ctx context.Context, caller domain.Caller, id domain.JobID) ([]domain.JobCandidate, error) {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return nil, err
	}
	if s.candidates == nil {
		return []domain.JobCandidate{}, nil
	}
	return s.candidates.FindByJob(ctx, id)
}

// Import pulls listings from the configured providers and stores them as drafts
func (s *service) Import(ctx context.Context, caller domain.Caller, query string, filters ImportFilters) (ImportResult, error) {
	if query == "" {
		return ImportResult{}, fmt.Errorf("query is required")
	}
	if !s.scopes.CanManage(caller.Role) {
		return ImportResult{}, &domain.AuthorizationError{
			CallerID: caller.ID,
			Role:     caller.Role,
			Action:   "import jobs",
		}
	}
	if len(s.providers) == 0 {
		return ImportResult{}, fmt.Errorf("no job providers configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock().UTC()
	seen := make(map[domain.JobID]struct{})
	imported := make([]domain.JobListing, 0)
	sourceCount := 0

	for _, p := range s.providers {
		listings, err := p.Search(ctx, query, filters)
		if err != nil {
			s.logger.Warn("job provider search failed", "provider", p.Name(), "err", err)
			continue
		}
		if len(listings) > 0 {
			sourceCount++
		}

		for _, l := range listings {
			if l.ID == "" {
				l.ID = uuid.NewString()
			}
			if _, dup := seen[l.ID]; dup {
				continue
			}
			seen[l.ID] = struct{}{}

			l.Status = domain.JobStatusDraft
			if l.Priority == "" {
				l.Priority = domain.PriorityMedium
			}
			l.AssignedTo = nil
			l.AssignedToName = nil
			l.CreatedAt = now
			l.UpdatedAt = now

			if err := l.Validate(); err != nil {
				s.logger.Warn("skipping imported job", "provider", p.Name(), "job_id", l.ID, "err", err)
				continue
			}
			if err := s.repo.Save(ctx, l); err != nil {
				return ImportResult{}, fmt.Errorf("save imported job %s: %w", l.ID, err)
			}
			imported = append(imported, l)
		}
	}

	s.logger.Info("jobs imported", "query", query, "count", len(imported), "sources", sourceCount)

	return ImportResult{
		Jobs:        imported,
		ImportedAt:  now,
		SourceCount: sourceCount,
	}, nil
}

func (s *service) publish(ctx context.Context, evt Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish catalog event failed", "type", evt.Type, "job_id", evt.JobID, "err", err)
	}
}
