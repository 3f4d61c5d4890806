package domain

import (
	"fmt"
	"time"
)

// JobID uniquely identifies a job listing
type JobID = string

// PersonID identifies a staff member a listing can be assigned to
type PersonID = string

// JobStatus is the lifecycle state of a listing
type JobStatus string

const (
	JobStatusDraft      JobStatus = "draft"
	JobStatusPublished  JobStatus = "published"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusOnHold     JobStatus = "on-hold"
	JobStatusFilled     JobStatus = "filled"
	JobStatusClosed     JobStatus = "closed"
)

// ParseJobStatus converts a raw string to a JobStatus, returning an error for
// unknown values.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case JobStatusDraft, JobStatusPublished, JobStatusInProgress,
		JobStatusOnHold, JobStatusFilled, JobStatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// Priority ranks how urgently a listing needs attention
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority converts a raw string to a Priority
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// JobListing is a vacancy managed by the recruitment team.
//
// AssignedTo and AssignedToName are either both nil or both set.
type JobListing struct {
	ID              JobID         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Department      string        `json:"department"`
	DepartmentID    string        `json:"departmentId"`
	Location        string        `json:"location"`
	LocationID      string        `json:"locationId"`
	Status          JobStatus     `json:"status"`
	Priority        Priority      `json:"priority"`
	AssignedTo      *PersonID     `json:"assignedTo"`
	AssignedToName  *string       `json:"assignedToName"`
	ApplicantsCount int           `json:"applicantsCount"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	Compensation    *Compensation `json:"compensation,omitempty"`
}

// Validate checks the listing before it is written. A compensation split,
// when present, must add up.
func (j JobListing) Validate() error {
	if j.Compensation == nil {
		return nil
	}
	if err := j.Compensation.Validate(); err != nil {
		return fmt.Errorf("job %s: %w", j.ID, err)
	}
	return nil
}

// IsAssigned reports whether the listing currently has an assignee
func (j JobListing) IsAssigned() bool {
	return j.AssignedTo != nil
}

// AssignedToID returns the assignee id or "" when unassigned
func (j JobListing) AssignedToID() PersonID {
	if j.AssignedTo == nil {
		return ""
	}
	return *j.AssignedTo
}

// CandidateStatus is the pipeline stage of a candidate
type CandidateStatus string

const (
	CandidateNew       CandidateStatus = "new"
	CandidateScreening CandidateStatus = "screening"
	CandidateInterview CandidateStatus = "interview"
	CandidateOffer     CandidateStatus = "offer"
	CandidateHired     CandidateStatus = "hired"
	CandidateRejected  CandidateStatus = "rejected"
)

// ParseCandidateStatus converts a raw string to a CandidateStatus
func ParseCandidateStatus(s string) (CandidateStatus, error) {
	cs := CandidateStatus(s)
	switch cs {
	case CandidateNew, CandidateScreening, CandidateInterview,
		CandidateOffer, CandidateHired, CandidateRejected:
		return cs, nil
	}
	return "", fmt.Errorf("unknown candidate status %q", s)
}

// JobCandidate is an applicant attached to a listing
type JobCandidate struct {
	ID        string          `json:"id"`
	JobID     JobID           `json:"jobId"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Status    CandidateStatus `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	AppliedAt time.Time       `json:"appliedAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
