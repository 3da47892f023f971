/*
aggregator.go - Per-period workload roll-up

PURPOSE:
  Walks every calendar day of one reporting period, sums the distributor
  output across all of a user's open tasks, and combines it with the
  absence count and the capacity profile into the period's figures.

PRECONDITION:
  The task slice must already be deduplicated and filtered through
  OpenTasks(). The aggregator sums blindly; a duplicate task would be
  counted twice.

CAPACITY MODEL:
  capacity  = hoursPerDay * workDaysInPeriod   (month: WorkDaysInMonth)
  effective = max(0, capacity - absenceWorkdays * hoursPerDay)

FULL-ABSENCE OVERRIDE:
  A user absent for the period's entire work-day count is reported at
  100% - full unavailability reads as full utilization by absence, not
  as 0% against a zero capacity.
*/
package workload

import (
	"math"

	"github.com/warp/workload-engine/generic"
)

// AggregatePeriod computes the workload figures for one reporting period.
func AggregatePeriod(profile CapacityProfile, tasks []OpenTask, absences []AbsenceInterval, kind generic.PeriodKind, today generic.TimePoint) PeriodFigures {
	period := generic.PeriodFor(kind, today)
	hoursPerDay := profile.HoursPerDay()

	totalWorkDays := period.WorkDayCount()
	if kind == generic.PeriodMonth {
		totalWorkDays = generic.WorkDaysInMonth(today.Year(), today.Month())
	}

	capacity := hoursPerDay * float64(totalWorkDays)
	absenceDays := CountAbsenceWorkdays(absences, period)

	effective := capacity - float64(absenceDays)*hoursPerDay
	if effective < 0 {
		effective = 0
	}

	var assigned float64
	for _, day := range period.Days() {
		for _, task := range tasks {
			assigned += HoursOn(task, day, today)
		}
	}

	var percentage int
	switch {
	case absenceDays >= totalWorkDays:
		percentage = 100
	case effective > 0:
		percentage = int(math.Round(assigned / effective * 100))
	}

	return PeriodFigures{
		AssignedHours:   assigned,
		CapacityHours:   effective,
		Percentage:      percentage,
		AbsenceWorkdays: absenceDays,
	}
}
