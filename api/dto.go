/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

ROUNDING:
  This file is the presentation boundary: hour values are rounded to one
  decimal place HERE and nowhere else. Internal accumulation stays
  unrounded so rounding error never compounds across days or tasks.

SEE ALSO:
  - handlers.go: Uses these types
  - workload/types.go: The unrounded domain results
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/workload-engine/generic"
	"github.com/warp/workload-engine/workload"
)

// =============================================================================
// WORKLOAD RESPONSE
// =============================================================================

// PeriodFiguresDTO is one reporting period of a user's workload.
type PeriodFiguresDTO struct {
	Assigned    float64 `json:"assigned"`
	Capacity    float64 `json:"capacity"`
	Percentage  int     `json:"percentage"`
	AbsenceDays int     `json:"absence_days"`
}

// PeriodsDTO groups the three fixed reporting periods.
type PeriodsDTO struct {
	Day   PeriodFiguresDTO `json:"day"`
	Week  PeriodFiguresDTO `json:"week"`
	Month PeriodFiguresDTO `json:"month"`
}

// WorkloadDTO is the per-user workload record.
type WorkloadDTO struct {
	UserID                string     `json:"user_id"`
	UserName              string     `json:"user_name"`
	UserEmail             string     `json:"user_email"`
	WeeklyHours           float64    `json:"weekly_hours"`
	WorkloadPercent       int        `json:"workload_percent"`
	AvailableHoursPerWeek float64    `json:"available_hours_per_week"`
	Periods               PeriodsDTO `json:"periods"`
}

// round1 rounds an hour value to one decimal place for display.
func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

func periodFiguresDTO(f workload.PeriodFigures) PeriodFiguresDTO {
	return PeriodFiguresDTO{
		Assigned:    round1(f.AssignedHours),
		Capacity:    round1(f.CapacityHours),
		Percentage:  f.Percentage,
		AbsenceDays: f.AbsenceWorkdays,
	}
}

// NewWorkloadDTO shapes a domain result for the wire.
func NewWorkloadDTO(w workload.UserWorkload) WorkloadDTO {
	return WorkloadDTO{
		UserID:                w.User.ID,
		UserName:              w.User.Name,
		UserEmail:             w.User.Email,
		WeeklyHours:           w.User.Capacity.WeeklyHours,
		WorkloadPercent:       w.User.Capacity.WorkloadPercent,
		AvailableHoursPerWeek: round1(w.User.Capacity.AvailableHoursPerWeek()),
		Periods: PeriodsDTO{
			Day:   periodFiguresDTO(w.Periods[generic.PeriodDay]),
			Week:  periodFiguresDTO(w.Periods[generic.PeriodWeek]),
			Month: periodFiguresDTO(w.Periods[generic.PeriodMonth]),
		},
	}
}

// =============================================================================
// USER TYPES
// =============================================================================

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	WeeklyHours     float64 `json:"weekly_hours"`
	WorkloadPercent int     `json:"workload_percent"`
}

// CreateUserRequest is the request to create a user.
type CreateUserRequest struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	WeeklyHours     float64 `json:"weekly_hours"`
	WorkloadPercent int     `json:"workload_percent"`
}

// =============================================================================
// TASK TYPES
// =============================================================================

// CreateTaskRequest is the request to create a task. estimated_hours and
// due_date are optional: tasks without them are valid but contribute
// nothing to workload.
type CreateTaskRequest struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	AssigneeID     string   `json:"assignee_id"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	DueDate        *string  `json:"due_date,omitempty"` // YYYY-MM-DD
}

// TaskDTO represents a task in API responses.
type TaskDTO struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	AssigneeID     string   `json:"assignee_id,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	DueDate        *string  `json:"due_date,omitempty"`
	Completed      bool     `json:"completed"`
}

// AddAssigneeRequest links a user to a task through the secondary
// assignee list.
type AddAssigneeRequest struct {
	UserID string `json:"user_id"`
}

// =============================================================================
// ABSENCE TYPES
// =============================================================================

// CreateAbsenceRequest records a whole-day absence interval (inclusive).
type CreateAbsenceRequest struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason,omitempty"`
}

// AbsenceDTO represents an absence in API responses.
type AbsenceDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}
