package job

import (
	"context"
	"fmt"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// ScopeKind decides which part of the catalog a role can see
type ScopeKind string

const (
	ScopeAll      ScopeKind = "all"
	ScopeLocation ScopeKind = "location"
	ScopeAssigned ScopeKind = "assigned"
	ScopeNone     ScopeKind = "none"
)

// ParseScopeKind converts a raw string to a ScopeKind
func ParseScopeKind(s string) (ScopeKind, error) {
	k := ScopeKind(s)
	switch k {
	case ScopeAll, ScopeLocation, ScopeAssigned, ScopeNone:
		return k, nil
	}
	return "", fmt.Errorf("unknown scope kind %q", s)
}

// RoleScope is the static configuration attached to a role
type RoleScope struct {
	Kind ScopeKind `json:"scope"`
	// LocationID is the home location for ScopeLocation roles
	LocationID string   `json:"location,omitempty"`
	Menu       []string `json:"menu,omitempty"`
}

// ScopeConfig maps each role to its scope. Roles missing from the map see nothing.
type ScopeConfig map[domain.Role]RoleScope

// DefaultScopeConfig is used when no role table is configured
func DefaultScopeConfig() ScopeConfig {
	return ScopeConfig{
		domain.RoleCompanyAdmin: {
			Kind: ScopeAll,
			Menu: []string{"dashboard", "jobs", "candidates", "metrics", "settings"},
		},
		domain.RoleHiringManager: {
			Kind:       ScopeLocation,
			LocationID: "loc-hq",
			Menu:       []string{"dashboard", "jobs", "candidates", "metrics"},
		},
		domain.RoleTalentScout: {
			Kind: ScopeAssigned,
			Menu: []string{"dashboard", "my-jobs", "candidates"},
		},
		domain.RoleTeamMember: {
			Kind: ScopeAssigned,
			Menu: []string{"dashboard", "my-jobs"},
		},
		domain.RoleApplicant: {
			Kind: ScopeNone,
			Menu: []string{"applications"},
		},
	}
}

// KindFor returns the scope kind for a role
func (c ScopeConfig) KindFor(role domain.Role) ScopeKind {
	rs, ok := c[role]
	if !ok || rs.Kind == "" {
		return ScopeNone
	}
	return rs.Kind
}

// HomeLocation returns the location bound to a role in the role table
func (c ScopeConfig) HomeLocation(role domain.Role) string {
	return c[role].LocationID
}

// CanManage reports whether the role may mutate listings it did not own
func (c ScopeConfig) CanManage(role domain.Role) bool {
	switch c.KindFor(role) {
	case ScopeAll, ScopeLocation:
		return true
	}
	return false
}

// VisibleJobs returns the subset of jobs the caller may see, preserving order
func VisibleJobs(jobs []domain.JobListing, caller domain.Caller, cfg ScopeConfig) []domain.JobListing {
	switch cfg.KindFor(caller.Role) {
	case ScopeAll:
		out := make([]domain.JobListing, len(jobs))
		copy(out, jobs)
		return out
	case ScopeLocation:
		loc := cfg.HomeLocation(caller.Role)
		return selectJobs(jobs, func(j domain.JobListing) bool {
			return loc != "" && j.LocationID == loc
		})
	case ScopeAssigned:
		return selectJobs(jobs, func(j domain.JobListing) bool {
			return caller.ID != "" && j.AssignedToID() == caller.ID
		})
	}
	return []domain.JobListing{}
}

// loadVisible reads the caller's scope straight from the repository accessor
// that matches the scope kind.
func loadVisible(ctx context.Context, repo Repository, caller domain.Caller, cfg ScopeConfig) ([]domain.JobListing, error) {
	switch cfg.KindFor(caller.Role) {
	case ScopeAll:
		return repo.LoadAll(ctx)
	case ScopeLocation:
		loc := cfg.HomeLocation(caller.Role)
		if loc == "" {
			return []domain.JobListing{}, nil
		}
		return repo.FindByLocation(ctx, loc)
	case ScopeAssigned:
		if caller.ID == "" {
			return []domain.JobListing{}, nil
		}
		return repo.FindByAssignee(ctx, caller.ID)
	}
	return []domain.JobListing{}, nil
}

func selectJobs(jobs []domain.JobListing, keep func(domain.JobListing) bool) []domain.JobListing {
	out := make([]domain.JobListing, 0, len(jobs))
	for _, j := range jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	return out
}
