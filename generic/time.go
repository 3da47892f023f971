/*
Package generic provides the domain-agnostic calendar engine.

PURPOSE:
  This package contains the date types and work-day arithmetic that the
  workload projection engine is built on. It knows nothing about tasks,
  absences, or capacity - only about calendar days, work days, and
  reporting periods.

KEY CONCEPTS IN THIS FILE (time.go):
  - TimePoint: An immutable calendar-day value (UTC midnight)
  - NextWorkDay: The anchor rule for "work starts now"
  - Weekday queries: IsWorkday / IsWeekend

DESIGN PRINCIPLES:
  1. Immutability: TimePoints are values; arithmetic returns new values
  2. Day granularity: All dates are local calendar days, no timezones
  3. Explicit clocks: Nothing here reads the wall clock except Today(),
     which callers use once at the boundary and then thread through

SEE ALSO:
  - calendar.go: Work-day counting
  - period.go: Reporting periods (day / week / month)
*/
package generic

import (
	"time"
)

// =============================================================================
// TIME POINT - Immutable calendar-day value
// =============================================================================

// TimePoint is a single calendar day. The embedded time is always
// normalized to UTC midnight, so == comparison and map keys are safe.
type TimePoint struct {
	t time.Time
}

// NewTimePoint constructs a TimePoint for the given calendar day.
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates an arbitrary time to its calendar day.
func FromTime(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day. Boundary use only: the engine
// itself always receives "today" as an explicit parameter.
func Today() TimePoint {
	return FromTime(time.Now())
}

// ParseDay parses a "YYYY-MM-DD" string.
func ParseDay(s string) (TimePoint, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return TimePoint{}, err
	}
	return FromTime(t), nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.t.Before(other.t) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.t.Equal(other.t) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.t.After(other.t) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint   { return TimePoint{t: tp.t.AddDate(0, 0, n)} }
func (tp TimePoint) AddMonths(n int) TimePoint { return TimePoint{t: tp.t.AddDate(0, n, 0)} }

// Properties
func (tp TimePoint) Year() int             { return tp.t.Year() }
func (tp TimePoint) Month() time.Month     { return tp.t.Month() }
func (tp TimePoint) Day() int              { return tp.t.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.t.Weekday() }
func (tp TimePoint) IsZero() bool          { return tp.t.IsZero() }
func (tp TimePoint) Time() time.Time       { return tp.t }

func (tp TimePoint) IsWeekend() bool {
	wd := tp.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (tp TimePoint) IsWorkday() bool { return !tp.IsWeekend() }

// NextWorkDay returns tp unchanged if it is a work day; otherwise the
// following Monday (Saturday +2, Sunday +1).
func (tp TimePoint) NextWorkDay() TimePoint {
	switch tp.Weekday() {
	case time.Saturday:
		return tp.AddDays(2)
	case time.Sunday:
		return tp.AddDays(1)
	default:
		return tp
	}
}

func (tp TimePoint) String() string {
	return tp.t.Format("2006-01-02")
}

// =============================================================================
// MONTH AND WEEK BOUNDARIES
// =============================================================================

func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }

func EndOfMonth(year int, month time.Month) TimePoint {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return FromTime(t)
}

// StartOfWeek returns the Monday of the week containing tp.
func StartOfWeek(tp TimePoint) TimePoint {
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(tp.Weekday()) + 6) % 7
	return tp.AddDays(-offset)
}

func DaysBetween(from, to TimePoint) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

func MinDay(a, b TimePoint) TimePoint {
	if a.Before(b) {
		return a
	}
	return b
}

func MaxDay(a, b TimePoint) TimePoint {
	if a.After(b) {
		return a
	}
	return b
}
