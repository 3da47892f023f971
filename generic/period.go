/*
period.go - Reporting periods

PURPOSE:
  A Period is the time boundary a workload figure is computed for. The
  engine always reports the same three overlapping windows relative to
  "today": the current day, the Monday-start week, and the calendar month.

KEY INSIGHT:
  Periods are closed intervals [Start, End] of calendar days. They are
  recomputed fresh from "today" on every request - there is no stored
  period state anywhere.
*/
package generic

// Period is a closed interval of calendar days [Start, End].
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Contains returns true if the day falls within [Start, End].
func (p Period) Contains(d TimePoint) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns every calendar day in the period as a fresh slice of
// immutable TimePoints. Callers iterate the slice; nothing is mutated.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	for d := p.Start; d.BeforeOrEqual(p.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// WorkDayCount returns the number of work days inside the period.
func (p Period) WorkDayCount() int {
	return WorkDays(p.Start, p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// PeriodKind selects one of the three fixed reporting windows.
type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"   // the current calendar day
	PeriodWeek  PeriodKind = "week"  // Monday-start week containing today
	PeriodMonth PeriodKind = "month" // calendar month containing today
)

// ReportingPeriods lists the three windows in their fixed reporting order.
var ReportingPeriods = []PeriodKind{PeriodDay, PeriodWeek, PeriodMonth}

// PeriodFor returns the reporting period of the given kind containing today.
func PeriodFor(kind PeriodKind, today TimePoint) Period {
	switch kind {
	case PeriodWeek:
		start := StartOfWeek(today)
		return Period{Start: start, End: start.AddDays(6)}
	case PeriodMonth:
		return Period{
			Start: StartOfMonth(today.Year(), today.Month()),
			End:   EndOfMonth(today.Year(), today.Month()),
		}
	default:
		return Period{Start: today, End: today}
	}
}

// Union returns the smallest period covering both p and q. Used to size
// the absence fetch window across all three reporting periods.
func (p Period) Union(q Period) Period {
	return Period{Start: MinDay(p.Start, q.Start), End: MaxDay(p.End, q.End)}
}
