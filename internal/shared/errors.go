package shared

import (
	"errors"
	"fmt"
)

// Expected, user-facing outcomes of engine operations.
var (
	ErrNotFound      = errors.New("not found")
	ErrNothingToSort = errors.New("nothing to sort")
	ErrValidation    = errors.New("validation failed")

	// ErrStore matches every *StoreError.
	ErrStore = errors.New("store failure")
)

// NotFound reports a missing entity, or one not owned by the caller.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Invalid reports rejected input.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// StoreError wraps a transaction or connectivity failure of the persistent store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStore) true for any StoreError.
func (e *StoreError) Is(target error) bool { return target == ErrStore }

// IsUserFacing reports whether err may be shown to the caller verbatim.
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrNothingToSort) || errors.Is(err, ErrValidation)
}

// Outcome classifies err into a short label for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNothingToSort):
		return "nothing_to_sort"
	case errors.Is(err, ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

// Classify passes expected outcomes through and wraps anything else in a
// StoreError tagged with op.
func Classify(op string, err error) error {
	if err == nil || IsUserFacing(err) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
