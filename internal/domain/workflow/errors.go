package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the claim does not exist or is inactive
	ErrNotFound = errors.New("claim not found")

	// ErrInvalidTransition is returned when the action does not apply to
	// the claim's current status
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrValidation is returned for missing or out-of-range input
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateClaim is returned when an active claim already exists
	// for the same lecturer, period and module
	ErrDuplicateClaim = errors.New("duplicate claim")

	// ErrConflict is returned when the optimistic status check failed due
	// to a concurrent transition
	ErrConflict = errors.New("claim modified concurrently")

	// ErrPersistence is returned for underlying storage failures
	ErrPersistence = errors.New("persistence failure")
)

// TransitionError reports an illegal action and carries the claim's actual
// current status so callers can present an accurate message.
type TransitionError struct {
	Trigger Trigger
	Stage   Stage
	Current State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot fire %s as %s: claim is %s", e.Trigger, e.Stage, e.Current)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError reports a failed optimistic status check
type ConflictError struct {
	ClaimID  int64
	Expected State
	Actual   State
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("claim %d changed from %s to %s during review", e.ClaimID, e.Expected, e.Actual)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// PersistenceCategory classifies a storage failure so operators can tell
// configuration defects from transient outages
type PersistenceCategory string

const (
	CategoryConstraint   PersistenceCategory = "constraint"
	CategoryConnectivity PersistenceCategory = "connectivity"
	CategoryUnknown      PersistenceCategory = "unknown"
)

// PersistenceError wraps a storage failure with its classification
type PersistenceError struct {
	Category PersistenceCategory
	Op       string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Category, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}
