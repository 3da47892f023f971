/*
service.go - Per-user workload orchestration

PURPOSE:
  Runs the projection for a batch of users: resolves the requested IDs
  against the caller's scope, fetches each user's profile, open tasks,
  and absences from the directory, and aggregates the three reporting
  periods.

SCOPE MODEL:
  Authorization itself is an external collaborator's concern; the service
  receives a pre-resolved caller identity and must only refuse to widen
  scope. A non-elevated caller may request exactly their own ID. The
  check runs before any data fetch so a rejection leaks nothing.

FAILURE SEMANTICS:
  - empty user list (after defaulting to the caller) -> ErrNoUsersRequested
  - out-of-scope request                             -> ScopeError
  - user ID not resolving to a profile               -> silently omitted
  Batch requests commonly carry stale IDs; one missing user must not
  abort the whole batch.

DETERMINISM:
  Results are emitted in request order and are a pure function of the
  directory contents and "today". Users are processed sequentially; the
  per-user computations are independent, so this is correctness-neutral.
*/
package workload

import (
	"context"
	"strings"

	"github.com/warp/workload-engine/generic"
)

// =============================================================================
// DIRECTORY - External data source (already tenant-scoped)
// =============================================================================

// Directory supplies the per-user inputs of the projection. Implementations
// are expected to have applied tenant scoping already; the service never
// widens the ID list it is given.
type Directory interface {
	// GetProfile returns the user's identity and capacity profile, or
	// (nil, nil) when the ID does not resolve.
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)

	// ListOpenTasks returns the user's uncompleted tasks across all
	// association paths. Duplicates are allowed; the service dedupes.
	ListOpenTasks(ctx context.Context, userID string) ([]OpenTask, error)

	// ListAbsences returns absences overlapping [from, to].
	ListAbsences(ctx context.Context, userID string, from, to generic.TimePoint) ([]AbsenceInterval, error)
}

// Caller identifies who is asking. Elevated callers (managers, admins)
// may request any user in their already-authorized scope.
type Caller struct {
	UserID   string
	Elevated bool
}

// =============================================================================
// SERVICE
// =============================================================================

// Service orchestrates workload projection over a directory.
type Service struct {
	Dir Directory
}

func NewService(dir Directory) *Service {
	return &Service{Dir: dir}
}

// Report computes the workload of each requested user for the current
// day, week, and month relative to today. An empty ID list defaults to
// the caller's own ID.
func (s *Service) Report(ctx context.Context, caller Caller, userIDs []string, today generic.TimePoint) ([]UserWorkload, error) {
	ids := normalizeIDs(userIDs, caller.UserID)
	if len(ids) == 0 {
		return nil, generic.ErrNoUsersRequested
	}

	if !caller.Elevated {
		var outside []string
		for _, id := range ids {
			if id != caller.UserID {
				outside = append(outside, id)
			}
		}
		if len(outside) > 0 {
			return nil, &generic.ScopeError{CallerID: caller.UserID, Requested: outside}
		}
	}

	// Absences are fetched once per user over the union of all three
	// periods: the week window can spill past the month boundary, so the
	// month window alone would under-fetch.
	window := fetchWindow(today)

	results := make([]UserWorkload, 0, len(ids))
	for _, id := range ids {
		profile, err := s.Dir.GetProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			continue // stale or removed ID: omit, don't abort the batch
		}

		rawTasks, err := s.Dir.ListOpenTasks(ctx, id)
		if err != nil {
			return nil, err
		}
		tasks := OpenTasks(rawTasks)

		absences, err := s.Dir.ListAbsences(ctx, id, window.Start, window.End)
		if err != nil {
			return nil, err
		}

		periods := make(map[generic.PeriodKind]PeriodFigures, len(generic.ReportingPeriods))
		for _, kind := range generic.ReportingPeriods {
			periods[kind] = AggregatePeriod(profile.Capacity, tasks, absences, kind, today)
		}

		results = append(results, UserWorkload{User: *profile, Periods: periods})
	}
	return results, nil
}

// normalizeIDs trims blanks, defaults to the fallback ID, and collapses
// duplicates while preserving request order.
func normalizeIDs(userIDs []string, fallback string) []string {
	seen := make(map[string]struct{}, len(userIDs))
	var ids []string
	for _, id := range userIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 && fallback != "" {
		ids = []string{fallback}
	}
	return ids
}

// fetchWindow returns the union of the three reporting periods for today.
func fetchWindow(today generic.TimePoint) generic.Period {
	window := generic.PeriodFor(generic.PeriodDay, today)
	for _, kind := range []generic.PeriodKind{generic.PeriodWeek, generic.PeriodMonth} {
		window = window.Union(generic.PeriodFor(kind, today))
	}
	return window
}
