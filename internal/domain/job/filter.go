package job

import (
	"strings"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// FilterAll is the UI value meaning "do not filter on this field"
const FilterAll = "all"

const (
	AssignmentAssigned   = "assigned"
	AssignmentUnassigned = "unassigned"
)

// Filter holds the caller-entered predicates. Empty or "all" values are
// ignored, as are values outside the closed set of each control.
type Filter struct {
	Text       string `json:"text,omitempty"`
	Status     string `json:"status,omitempty"`
	LocationID string `json:"location_id,omitempty"`
	Assignment string `json:"assignment,omitempty"`
}

// Apply returns the jobs matching every active predicate in input order
func (f Filter) Apply(jobs []domain.JobListing) []domain.JobListing {
	preds := f.predicates()
	return selectJobs(jobs, func(j domain.JobListing) bool {
		for _, p := range preds {
			if !p(j) {
				return false
			}
		}
		return true
	})
}

func (f Filter) predicates() []func(domain.JobListing) bool {
	var preds []func(domain.JobListing) bool

	if text := strings.ToLower(strings.TrimSpace(f.Text)); text != "" {
		preds = append(preds, func(j domain.JobListing) bool {
			return strings.Contains(strings.ToLower(j.Title), text) ||
				strings.Contains(strings.ToLower(j.Department), text) ||
				strings.Contains(strings.ToLower(j.Location), text)
		})
	}

	if active(f.Status) {
		if status, err := domain.ParseJobStatus(f.Status); err == nil {
			preds = append(preds, func(j domain.JobListing) bool {
				return j.Status == status
			})
		}
	}

	if active(f.LocationID) {
		loc := f.LocationID
		preds = append(preds, func(j domain.JobListing) bool {
			return j.LocationID == loc
		})
	}

	switch f.Assignment {
	case AssignmentAssigned:
		preds = append(preds, domain.JobListing.IsAssigned)
	case AssignmentUnassigned:
		preds = append(preds, func(j domain.JobListing) bool {
			return !j.IsAssigned()
		})
	}

	return preds
}

func active(v string) bool {
	return v != "" && v != FilterAll
}
