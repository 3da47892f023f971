/*
calendar.go - Work-day counting

PURPOSE:
  Counting work days (Mon-Fri) over closed date ranges and whole months.
  These counts drive both capacity (how many work days does this period
  hold?) and distribution (across how many days is a task spread?).

POLICY:
  Saturday and Sunday are the only non-work days. There is no holiday
  calendar: a public holiday counts as a regular work day.
*/
package generic

import "time"

// WorkDays returns the number of work days in the closed range
// [start, end]. Returns 0 when start is after end.
func WorkDays(start, end TimePoint) int {
	if start.After(end) {
		return 0
	}
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsWorkday() {
			count++
		}
	}
	return count
}

// WorkDaysInMonth counts the work days in a calendar month by walking
// every day of the month.
func WorkDaysInMonth(year int, month time.Month) int {
	return WorkDays(StartOfMonth(year, month), EndOfMonth(year, month))
}
