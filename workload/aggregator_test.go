package workload_test

import (
	"testing"
	"time"

	"github.com/warp/workload-engine/generic"
	"github.com/warp/workload-engine/workload"
)

func fullTime() workload.CapacityProfile {
	return workload.CapacityProfile{WeeklyHours: 40, WorkloadPercent: 100}
}

// =============================================================================
// CAPACITY
// =============================================================================

func TestAggregatePeriod_WeekCapacity_FullTime(t *testing.T) {
	// GIVEN: 40h/week at 100%, no tasks, no absences
	// WHEN: Aggregating the week of Wed 2024-01-10
	// THEN: Capacity 40 (5 work days * 8h), assigned 0, percentage 0

	today := generic.NewTimePoint(2024, time.January, 10)
	fig := workload.AggregatePeriod(fullTime(), nil, nil, generic.PeriodWeek, today)

	if fig.CapacityHours != 40 {
		t.Errorf("expected capacity 40, got %v", fig.CapacityHours)
	}
	if fig.AssignedHours != 0 || fig.Percentage != 0 || fig.AbsenceWorkdays != 0 {
		t.Errorf("expected empty figures, got %+v", fig)
	}
}

func TestAggregatePeriod_DayCapacity_HalfTime(t *testing.T) {
	// 40h at 50% -> 20h/week -> 4h/day.
	profile := workload.CapacityProfile{WeeklyHours: 40, WorkloadPercent: 50}
	today := generic.NewTimePoint(2024, time.January, 10)

	fig := workload.AggregatePeriod(profile, nil, nil, generic.PeriodDay, today)
	if fig.CapacityHours != 4 {
		t.Errorf("expected capacity 4, got %v", fig.CapacityHours)
	}
}

func TestAggregatePeriod_MonthCapacity_UsesMonthWorkDays(t *testing.T) {
	// January 2024 has 23 work days -> 23 * 8 = 184h.
	today := generic.NewTimePoint(2024, time.January, 10)
	fig := workload.AggregatePeriod(fullTime(), nil, nil, generic.PeriodMonth, today)

	if fig.CapacityHours != 184 {
		t.Errorf("expected capacity 184, got %v", fig.CapacityHours)
	}
}

func TestAggregatePeriod_AbsenceReducesCapacity(t *testing.T) {
	// GIVEN: One absence day (Mon Jan 8) inside the week
	// THEN: Effective capacity drops by hoursPerDay

	today := generic.NewTimePoint(2024, time.January, 10)
	absences := []workload.AbsenceInterval{
		{Start: generic.NewTimePoint(2024, time.January, 8), End: generic.NewTimePoint(2024, time.January, 8)},
	}

	fig := workload.AggregatePeriod(fullTime(), nil, absences, generic.PeriodWeek, today)
	if fig.CapacityHours != 32 {
		t.Errorf("expected capacity 32 after one absence day, got %v", fig.CapacityHours)
	}
	if fig.AbsenceWorkdays != 1 {
		t.Errorf("expected 1 absence work day, got %d", fig.AbsenceWorkdays)
	}
}

// =============================================================================
// ASSIGNMENT AND PERCENTAGE
// =============================================================================

func TestAggregatePeriod_AssignedAndPercentage(t *testing.T) {
	// GIVEN: today = Mon Jan 8, one 20h task due Fri Jan 12
	// THEN: Week assigned 20, capacity 40, percentage 50

	today := generic.NewTimePoint(2024, time.January, 8)
	due := generic.NewTimePoint(2024, time.January, 12)
	est := 20.0
	tasks := []workload.OpenTask{{ID: "t1", EstimatedHours: &est, DueDate: &due}}

	fig := workload.AggregatePeriod(fullTime(), tasks, nil, generic.PeriodWeek, today)
	if !approx(fig.AssignedHours, 20) {
		t.Errorf("expected assigned 20, got %v", fig.AssignedHours)
	}
	if fig.Percentage != 50 {
		t.Errorf("expected 50%%, got %d", fig.Percentage)
	}
}

func TestAggregatePeriod_DayFigure_IsOneFifthOfEvenWeek(t *testing.T) {
	// The same 20h task seen through the day period: 4h assigned against
	// 8h capacity.
	today := generic.NewTimePoint(2024, time.January, 8)
	due := generic.NewTimePoint(2024, time.January, 12)
	est := 20.0
	tasks := []workload.OpenTask{{ID: "t1", EstimatedHours: &est, DueDate: &due}}

	fig := workload.AggregatePeriod(fullTime(), tasks, nil, generic.PeriodDay, today)
	if !approx(fig.AssignedHours, 4) {
		t.Errorf("expected assigned 4, got %v", fig.AssignedHours)
	}
	if fig.Percentage != 50 {
		t.Errorf("expected 50%%, got %d", fig.Percentage)
	}
}

func TestAggregatePeriod_ZeroCapacity_ZeroPercent(t *testing.T) {
	// GIVEN: A 0% workload user with assigned work
	// THEN: Percentage is 0, never a division error

	profile := workload.CapacityProfile{WeeklyHours: 40, WorkloadPercent: 0}
	today := generic.NewTimePoint(2024, time.January, 8)
	due := generic.NewTimePoint(2024, time.January, 12)
	est := 10.0
	tasks := []workload.OpenTask{{ID: "t1", EstimatedHours: &est, DueDate: &due}}

	fig := workload.AggregatePeriod(profile, tasks, nil, generic.PeriodWeek, today)
	if fig.Percentage != 0 {
		t.Errorf("expected 0%% with zero capacity, got %d", fig.Percentage)
	}
	if !approx(fig.AssignedHours, 10) {
		t.Errorf("assigned hours still reported: expected 10, got %v", fig.AssignedHours)
	}
}

// =============================================================================
// FULL-ABSENCE OVERRIDE
// =============================================================================

func TestAggregatePeriod_FullAbsenceWeek_Forces100Percent(t *testing.T) {
	// GIVEN: Absent every work day of the week, nothing assigned
	// THEN: Percentage is exactly 100

	today := generic.NewTimePoint(2024, time.January, 10)
	absences := []workload.AbsenceInterval{
		{Start: generic.NewTimePoint(2024, time.January, 8), End: generic.NewTimePoint(2024, time.January, 12)},
	}

	fig := workload.AggregatePeriod(fullTime(), nil, absences, generic.PeriodWeek, today)
	if fig.Percentage != 100 {
		t.Errorf("expected forced 100%%, got %d", fig.Percentage)
	}
	if fig.AssignedHours != 0 {
		t.Errorf("expected assigned 0, got %v", fig.AssignedHours)
	}
	if fig.AbsenceWorkdays != 5 {
		t.Errorf("expected 5 absence days, got %d", fig.AbsenceWorkdays)
	}
}

func TestAggregatePeriod_FullAbsence_FromOverlappingIntervals(t *testing.T) {
	// Two overlapping absences jointly covering the work week trigger the
	// override the same way a single interval does.
	today := generic.NewTimePoint(2024, time.January, 10)
	absences := []workload.AbsenceInterval{
		{Start: generic.NewTimePoint(2024, time.January, 8), End: generic.NewTimePoint(2024, time.January, 10)},
		{Start: generic.NewTimePoint(2024, time.January, 10), End: generic.NewTimePoint(2024, time.January, 12)},
	}

	fig := workload.AggregatePeriod(fullTime(), nil, absences, generic.PeriodWeek, today)
	if fig.Percentage != 100 {
		t.Errorf("expected forced 100%%, got %d", fig.Percentage)
	}
}

// =============================================================================
// TASK DEDUPLICATION (OpenTasks precondition)
// =============================================================================

func TestOpenTasks_DropsCompletedAndDuplicates(t *testing.T) {
	est := 8.0
	due := generic.NewTimePoint(2024, time.January, 12)
	tasks := []workload.OpenTask{
		{ID: "a", EstimatedHours: &est, DueDate: &due},
		{ID: "a", EstimatedHours: &est, DueDate: &due}, // dual assignment path
		{ID: "b", EstimatedHours: &est, DueDate: &due, Completed: true},
		{ID: "c", EstimatedHours: &est, DueDate: &due},
	}

	open := workload.OpenTasks(tasks)
	if len(open) != 2 {
		t.Fatalf("expected 2 open tasks, got %d", len(open))
	}
	if open[0].ID != "a" || open[1].ID != "c" {
		t.Errorf("expected [a c] preserving order, got [%s %s]", open[0].ID, open[1].ID)
	}
}

func TestAggregatePeriod_DualAssignment_CountedOnce(t *testing.T) {
	// GIVEN: The same task fetched via direct assignee and assignee list
	// WHEN: Deduplicated through OpenTasks before aggregation
	// THEN: Its hours appear exactly once

	today := generic.NewTimePoint(2024, time.January, 8)
	due := generic.NewTimePoint(2024, time.January, 12)
	est := 10.0
	raw := []workload.OpenTask{
		{ID: "t1", EstimatedHours: &est, DueDate: &due},
		{ID: "t1", EstimatedHours: &est, DueDate: &due},
	}

	fig := workload.AggregatePeriod(fullTime(), workload.OpenTasks(raw), nil, generic.PeriodWeek, today)
	if !approx(fig.AssignedHours, 10) {
		t.Errorf("expected 10 assigned (counted once), got %v", fig.AssignedHours)
	}
}
