package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced job or candidate does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the caller may not perform the mutation.
	ErrUnauthorized = errors.New("not authorized")

	// ErrInvalidCompensation indicates a compensation split that does not add up.
	ErrInvalidCompensation = errors.New("inconsistent compensation")
)

// NotFoundError reports a missing entity
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewJobNotFound builds a NotFoundError for a job listing
func NewJobNotFound(id JobID) error {
	return &NotFoundError{Entity: "job", ID: id}
}

// AuthorizationError reports a rejected mutation
type AuthorizationError struct {
	CallerID PersonID
	Role     Role
	Action   string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("caller %q with role %q may not %s", e.CallerID, e.Role, e.Action)
}

func (e *AuthorizationError) Unwrap() error { return ErrUnauthorized }
