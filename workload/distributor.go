/*
distributor.go - Task hour distribution

PURPOSE:
  Computes the fraction of a task's estimated hours attributable to one
  calendar day. This is the core algorithm of the engine: everything the
  aggregator reports is a sum of these per-(task, day) contributions.

DISTRIBUTION POLICY:
  anchor = next work day on or after today ("work starts now")

  1. No estimate or no due date     -> 0 everywhere
  2. Weekend target day             -> 0 (tasks never consume weekend capacity)
  3. Overdue (due before today)     -> entire estimate lands on the anchor
  4. Due before the anchor          -> same as overdue (e.g. due on the
     weekend between today and Monday)
  5. Otherwise                      -> estimate spread evenly across every
     work day in [anchor, due]; days outside the window get 0

KEY INSIGHT:
  The per-day rate is derived fresh from "today" on every call and applies
  uniformly across the whole window. There is no notion of already-consumed
  capacity from prior days, so day/week/month figures for the same task are
  always mutually consistent snapshots of the same moment.
*/
package workload

import (
	"github.com/warp/workload-engine/generic"
)

// HoursOn returns the hours of the task attributable to targetDay,
// relative to today.
func HoursOn(task OpenTask, targetDay, today generic.TimePoint) float64 {
	if task.EstimatedHours == nil || *task.EstimatedHours == 0 || task.DueDate == nil {
		return 0
	}
	if targetDay.IsWeekend() {
		return 0
	}

	anchor := today.NextWorkDay()
	due := *task.DueDate

	// Overdue work has no meaningful distribution: it must be done
	// immediately, so the whole estimate lands on the anchor. A due date
	// that falls between today and the anchor (weekend due date) is
	// treated the same way.
	if due.Before(today) || anchor.After(due) {
		if targetDay.Equal(anchor) {
			return *task.EstimatedHours
		}
		return 0
	}

	if targetDay.Before(anchor) || targetDay.After(due) {
		return 0
	}

	workDays := generic.WorkDays(anchor, due)
	if workDays < 1 {
		workDays = 1 // anchor == due on a work day still yields 1
	}
	return *task.EstimatedHours / float64(workDays)
}
