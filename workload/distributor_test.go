package workload_test

import (
	"math"
	"testing"
	"time"

	"github.com/warp/workload-engine/generic"
	"github.com/warp/workload-engine/workload"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func task(estimated float64, due generic.TimePoint) workload.OpenTask {
	return workload.OpenTask{ID: "task-1", EstimatedHours: &estimated, DueDate: &due}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// =============================================================================
// NO-OP TASKS
// =============================================================================

func TestHoursOn_NoEstimate_ContributesZeroEverywhere(t *testing.T) {
	// GIVEN: A task without an estimate
	// THEN: Zero on every day of its window

	due := generic.NewTimePoint(2024, time.January, 12)
	today := generic.NewTimePoint(2024, time.January, 8)
	noEstimate := workload.OpenTask{ID: "t", DueDate: &due}

	for d := today; d.BeforeOrEqual(due); d = d.AddDays(1) {
		if got := workload.HoursOn(noEstimate, d, today); got != 0 {
			t.Errorf("%s: expected 0 for unestimated task, got %v", d, got)
		}
	}
}

func TestHoursOn_NoDueDate_ContributesZero(t *testing.T) {
	est := 8.0
	today := generic.NewTimePoint(2024, time.January, 8)
	undated := workload.OpenTask{ID: "t", EstimatedHours: &est}

	if got := workload.HoursOn(undated, today, today); got != 0 {
		t.Errorf("expected 0 for undated task, got %v", got)
	}
}

func TestHoursOn_ZeroEstimate_ContributesZero(t *testing.T) {
	today := generic.NewTimePoint(2024, time.January, 8)
	if got := workload.HoursOn(task(0, today.AddDays(4)), today, today); got != 0 {
		t.Errorf("expected 0 for zero estimate, got %v", got)
	}
}

// =============================================================================
// WEEKEND EXCLUSION
// =============================================================================

func TestHoursOn_WeekendTarget_AlwaysZero(t *testing.T) {
	// GIVEN: A task whose window spans a weekend
	// THEN: Saturday and Sunday never receive hours

	today := generic.NewTimePoint(2024, time.January, 8)  // Monday
	due := generic.NewTimePoint(2024, time.January, 19)   // Friday next week
	tk := task(20, due)

	sat := generic.NewTimePoint(2024, time.January, 13)
	sun := generic.NewTimePoint(2024, time.January, 14)
	if got := workload.HoursOn(tk, sat, today); got != 0 {
		t.Errorf("Saturday: expected 0, got %v", got)
	}
	if got := workload.HoursOn(tk, sun, today); got != 0 {
		t.Errorf("Sunday: expected 0, got %v", got)
	}
}

// =============================================================================
// OVERDUE CONCENTRATION
// =============================================================================

func TestHoursOn_OverdueTask_LandsEntirelyOnAnchor(t *testing.T) {
	// GIVEN: today = Wed 2024-01-10, task due 2024-01-05, 8h estimate
	// THEN: Exactly 8 on today (the anchor), 0 everywhere else

	today := generic.NewTimePoint(2024, time.January, 10)
	tk := task(8, generic.NewTimePoint(2024, time.January, 5))

	if got := workload.HoursOn(tk, today, today); !approx(got, 8) {
		t.Errorf("anchor day: expected 8, got %v", got)
	}

	for offset := -7; offset <= 7; offset++ {
		if offset == 0 {
			continue
		}
		day := today.AddDays(offset)
		if got := workload.HoursOn(tk, day, today); got != 0 {
			t.Errorf("%s: expected 0 for overdue task off anchor, got %v", day, got)
		}
	}
}

func TestHoursOn_OverdueOnWeekend_AnchorIsMonday(t *testing.T) {
	// GIVEN: today = Sat 2024-01-06, overdue task
	// THEN: The whole estimate lands on Monday Jan 8

	today := generic.NewTimePoint(2024, time.January, 6)
	tk := task(5, generic.NewTimePoint(2024, time.January, 3))

	monday := generic.NewTimePoint(2024, time.January, 8)
	if got := workload.HoursOn(tk, monday, today); !approx(got, 5) {
		t.Errorf("Monday anchor: expected 5, got %v", got)
	}
}

func TestHoursOn_DueOnWeekendBeforeAnchor_TreatedAsOverdue(t *testing.T) {
	// GIVEN: today = Sat 2024-01-06, task due Sun 2024-01-07
	// Due is not before today, but the anchor (Mon Jan 8) is past it.
	// THEN: All hours land on the anchor

	today := generic.NewTimePoint(2024, time.January, 6)
	tk := task(6, generic.NewTimePoint(2024, time.January, 7))

	monday := generic.NewTimePoint(2024, time.January, 8)
	if got := workload.HoursOn(tk, monday, today); !approx(got, 6) {
		t.Errorf("expected 6 on anchor Monday, got %v", got)
	}
	if got := workload.HoursOn(tk, monday.AddDays(1), today); got != 0 {
		t.Errorf("expected 0 on Tuesday, got %v", got)
	}
}

// =============================================================================
// EVEN SPREAD AND CONSERVATION
// =============================================================================

func TestHoursOn_EvenSpread_SumConservation(t *testing.T) {
	// GIVEN: today = Mon 2024-01-08, due Fri 2024-01-12, 10h estimate
	// THEN: 2.0 on each of the 5 work days, total exactly 10

	today := generic.NewTimePoint(2024, time.January, 8)
	due := generic.NewTimePoint(2024, time.January, 12)
	tk := task(10, due)

	var total float64
	for d := today; d.BeforeOrEqual(due); d = d.AddDays(1) {
		got := workload.HoursOn(tk, d, today)
		if !approx(got, 2.0) {
			t.Errorf("%s: expected 2.0 per day, got %v", d, got)
		}
		total += got
	}
	if !approx(total, 10) {
		t.Errorf("conservation: expected total 10, got %v", total)
	}
}

func TestHoursOn_WindowSpanningWeekend_SpreadsOverWorkDaysOnly(t *testing.T) {
	// GIVEN: today = Thu 2024-01-04, due Tue 2024-01-09, 8h estimate
	// Window holds 4 work days (Thu, Fri, Mon, Tue)
	// THEN: 2.0 per work day, 0 on the weekend, total 8

	today := generic.NewTimePoint(2024, time.January, 4)
	due := generic.NewTimePoint(2024, time.January, 9)
	tk := task(8, due)

	var total float64
	for d := today; d.BeforeOrEqual(due); d = d.AddDays(1) {
		got := workload.HoursOn(tk, d, today)
		if d.IsWeekend() {
			if got != 0 {
				t.Errorf("%s: weekend day received %v hours", d, got)
			}
			continue
		}
		if !approx(got, 2.0) {
			t.Errorf("%s: expected 2.0, got %v", d, got)
		}
		total += got
	}
	if !approx(total, 8) {
		t.Errorf("conservation: expected total 8, got %v", total)
	}
}

func TestHoursOn_DueToday_WholeEstimateToday(t *testing.T) {
	// anchor == due: the max(1, workDays) floor keeps the division sound.
	today := generic.NewTimePoint(2024, time.January, 10)
	tk := task(7, today)

	if got := workload.HoursOn(tk, today, today); !approx(got, 7) {
		t.Errorf("expected 7 on the due day itself, got %v", got)
	}
}

func TestHoursOn_OutsideWindow_Zero(t *testing.T) {
	today := generic.NewTimePoint(2024, time.January, 8)
	due := generic.NewTimePoint(2024, time.January, 12)
	tk := task(10, due)

	before := today.AddDays(-1)
	after := generic.NewTimePoint(2024, time.January, 15)
	if got := workload.HoursOn(tk, before, today); got != 0 {
		t.Errorf("before window: expected 0, got %v", got)
	}
	if got := workload.HoursOn(tk, after, today); got != 0 {
		t.Errorf("after window: expected 0, got %v", got)
	}
}
