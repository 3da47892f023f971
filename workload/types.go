/*
Package workload implements the capacity projection engine.

PURPOSE:
  Given a user's contracted hours, their open tasks with estimated effort
  and due dates, and their recorded absences, this package answers "how
  utilized is this person today / this week / this month?". Each task's
  estimate is distributed across its work window, intersected with
  absences, and aggregated into the three overlapping reporting periods.

KEY CONCEPTS IN THIS FILE (types.go):
  - CapacityProfile: contracted weekly hours and workload percentage
  - OpenTask: a unit of estimated, dated work
  - AbsenceInterval: a whole-day unavailability window
  - PeriodFigures: assigned/capacity/percentage per reporting period

DESIGN PRINCIPLES:
  1. Purity: the engine is a function of (profile, tasks, absences, today);
     it owns no state, caches nothing, and never reads the wall clock
  2. Policy over errors: zero capacity, degenerate windows, and overlapping
     absences all have defined outputs and never raise
  3. Explicit dedup: tasks reachable through two association paths are
     collapsed by ID before any distribution

SEE ALSO:
  - distributor.go: per-(task, day) hour attribution
  - aggregator.go:  per-period roll-up
  - service.go:     per-user orchestration over the three periods
*/
package workload

import (
	"github.com/warp/workload-engine/generic"
)

// =============================================================================
// CAPACITY PROFILE
// =============================================================================

// CapacityProfile describes how many hours per week a user is available
// for task work. WorkloadPercent scales the contracted hours; values over
// 100 are allowed (deliberate overbooking).
type CapacityProfile struct {
	WeeklyHours     float64
	WorkloadPercent int
}

// AvailableHoursPerWeek returns the contracted hours scaled by the
// workload percentage.
func (p CapacityProfile) AvailableHoursPerWeek() float64 {
	return p.WeeklyHours * float64(p.WorkloadPercent) / 100
}

// HoursPerDay spreads the weekly availability over a fixed five-day work
// week. The divisor is invariant even when a period holds fewer work days.
func (p CapacityProfile) HoursPerDay() float64 {
	return p.AvailableHoursPerWeek() / 5
}

// =============================================================================
// TASKS AND ABSENCES
// =============================================================================

// OpenTask is a unit of work with an optional estimate and due date.
// Tasks without an estimate contribute zero hours; tasks without a due
// date are ignored. Neither is an error.
type OpenTask struct {
	ID             string
	Title          string
	EstimatedHours *float64
	DueDate        *generic.TimePoint
	Completed      bool
}

// AbsenceInterval is a whole-day unavailability window, inclusive on both
// ends. Intervals may overlap or touch; overlapping work days count once.
type AbsenceInterval struct {
	Start generic.TimePoint
	End   generic.TimePoint
}

// OpenTasks filters and deduplicates a task list: completed tasks are
// dropped, and a task appearing more than once (e.g. reachable both as
// direct assignee and through the shared-assignee list) is kept only at
// its first occurrence. The aggregator requires its input to have passed
// through here - double counting would corrupt every sum downstream.
func OpenTasks(tasks []OpenTask) []OpenTask {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]OpenTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// =============================================================================
// RESULTS
// =============================================================================

// PeriodFigures is the workload outcome for one reporting period.
// Hours are unrounded here; rounding to one decimal happens at the
// presentation boundary only.
type PeriodFigures struct {
	AssignedHours   float64
	CapacityHours   float64 // effective capacity: absence days already subtracted
	Percentage      int
	AbsenceWorkdays int
}

// UserProfile is the identity and capacity record the directory hands the
// engine for each user.
type UserProfile struct {
	ID       string
	Name     string
	Email    string
	Capacity CapacityProfile
}

// UserWorkload is the per-user result across the three reporting periods.
type UserWorkload struct {
	User    UserProfile
	Periods map[generic.PeriodKind]PeriodFigures
}
