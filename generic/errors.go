/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these with additional context.

ERROR CATEGORIES:
  1. Validation errors - malformed requests (empty user list, bad dates)
  2. Authorization errors - callers reaching outside their scope
  3. Store errors - missing entities

USAGE:
    if errors.Is(err, generic.ErrScopeDenied) {
        // map to 403 at the HTTP boundary
    }

Arithmetic edge cases (zero capacity, degenerate task windows, fully
overlapping absences) are policy with defined outputs, not errors; no
error type exists for them on purpose.
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoUsersRequested is returned when a workload request resolves to
	// an empty user-ID list after defaulting to the caller.
	ErrNoUsersRequested = errors.New("no users requested")

	// ErrScopeDenied is returned when a caller without elevated privilege
	// requests another user's workload. Raised before any data fetch.
	ErrScopeDenied = errors.New("requested users outside caller scope")

	// ErrUserNotFound is returned by stores when a user ID does not
	// resolve. The batch engine soft-skips it; single-entity endpoints
	// surface it as 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound is returned when a referenced task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ScopeError reports which requested IDs fell outside the caller's scope.
type ScopeError struct {
	CallerID  string
	Requested []string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("caller %s may not request workload for %v", e.CallerID, e.Requested)
}

func (e *ScopeError) Unwrap() error { return ErrScopeDenied }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNoUsersRequested) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTaskNotFound)
}
