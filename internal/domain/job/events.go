package job

import (
	"context"
	"time"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// Event types published after a committed catalog mutation
const (
	EventJobAssigned   = "EVENT_JOB_ASSIGNED"
	EventJobUnassigned = "EVENT_JOB_UNASSIGNED"
	EventJobRemoved    = "EVENT_JOB_REMOVED"
)

// Event describes a catalog mutation
type Event struct {
	Type       string           `json:"type"`
	JobID      domain.JobID     `json:"jobId"`
	ActorID    domain.PersonID  `json:"actorId"`
	AssignedTo *domain.PersonID `json:"assignedTo,omitempty"`
	At         time.Time        `json:"at"`
}

// Publisher fans catalog events out to other services. Failures are logged by
// the caller and never undo the mutation.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher discards events
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
