/*
absence.go - Absence work-day counting

PURPOSE:
  Counts how many distinct work days inside a reporting period overlap
  any of a user's absences.

KEY INSIGHT:
  Counting must go through a set keyed by calendar date, not a running
  counter. Two absences covering the same Wednesday are one lost work
  day, not two.
*/
package workload

import (
	"github.com/warp/workload-engine/generic"
)

// CountAbsenceWorkdays returns the number of distinct work days within
// the period that fall inside at least one absence interval.
func CountAbsenceWorkdays(absences []AbsenceInterval, period generic.Period) int {
	seen := make(map[string]struct{})
	for _, a := range absences {
		start := generic.MaxDay(a.Start, period.Start)
		end := generic.MinDay(a.End, period.End)
		if start.After(end) {
			continue // no overlap with the period
		}
		for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
			if d.IsWorkday() {
				seen[d.String()] = struct{}{}
			}
		}
	}
	return len(seen)
}
