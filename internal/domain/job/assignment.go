package job

import (
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// ErrInvalidGrantee is returned when an assignment names no person
var ErrInvalidGrantee = errors.New("grantee id is required")

// Grantee is the person a listing is handed to
type Grantee struct {
	ID   domain.PersonID
	Name string
}

// Assign hands listing to grantee, or clears the assignment when grantee is
// nil. Managing roles may always reassign; anyone else only when they are
// the current assignee. The returned listing has UpdatedAt set to now.
func Assign(listing domain.JobListing, grantee *Grantee, caller domain.Caller, cfg ScopeConfig, now time.Time) (domain.JobListing, error) {
	if grantee != nil && grantee.ID == "" {
		return listing, ErrInvalidGrantee
	}

	action := "assign"
	if grantee == nil {
		action = "unassign"
	}
	if err := authorizeAssignment(listing, caller, cfg, action); err != nil {
		return listing, err
	}

	if grantee == nil {
		listing.AssignedTo = nil
		listing.AssignedToName = nil
	} else {
		id, name := grantee.ID, grantee.Name
		listing.AssignedTo = &id
		listing.AssignedToName = &name
	}
	listing.UpdatedAt = now

	return listing, nil
}

// AuthorizeRemoval checks the role gate for deleting listings
func AuthorizeRemoval(listing domain.JobListing, caller domain.Caller, cfg ScopeConfig) error {
	if cfg.CanManage(caller.Role) {
		return nil
	}
	return &domain.AuthorizationError{
		CallerID: caller.ID,
		Role:     caller.Role,
		Action:   fmt.Sprintf("remove job %s", listing.ID),
	}
}

func authorizeAssignment(listing domain.JobListing, caller domain.Caller, cfg ScopeConfig, action string) error {
	if cfg.CanManage(caller.Role) {
		return nil
	}
	// hand-off by the current assignee
	if caller.ID != "" && listing.AssignedToID() == caller.ID {
		return nil
	}
	return &domain.AuthorizationError{
		CallerID: caller.ID,
		Role:     caller.Role,
		Action:   fmt.Sprintf("%s job %s", action, listing.ID),
	}
}
