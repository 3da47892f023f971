/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for demos. Each scenario creates users, tasks, and absences that
	demonstrate a specific aspect of the projection.

AVAILABLE SCENARIOS:

	balanced-team:    Two full-time users with estimated tasks due this week
	overdue-pile:     Overdue tasks concentrating on the next work day
	part-time-absent: Half-time user absent the whole current week

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create users with capacity profiles
 3. Create tasks with estimates and due dates relative to today
 4. Optionally add absences

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "balanced-team"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: writeJSON/writeError helpers
  - server.go: Scenario routes
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/warp/workload-engine/generic"
	"github.com/warp/workload-engine/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "balanced-team",
		Name:        "Balanced Team",
		Description: "Two full-time users with estimated tasks due across the current week",
	},
	{
		ID:          "overdue-pile",
		Name:        "Overdue Pile",
		Description: "Past-due tasks whose full estimates land on the next work day",
	},
	{
		ID:          "part-time-absent",
		Name:        "Part-Time & Absent",
		Description: "A 50% user absent every work day of the current week",
	},
}

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// ResetDatabase clears all data.
// POST /api/scenarios/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset"})
}

// LoadScenario resets the database and loads the requested scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "balanced-team":
		err = loadBalancedTeam(ctx, h.Store)
	case "overdue-pile":
		err = loadOverduePile(ctx, h.Store)
	case "part-time-absent":
		err = loadPartTimeAbsent(ctx, h.Store)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("scenario", req.ScenarioID).Error("scenario load failed")
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "loaded", "scenario_id": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================
// All dates are derived from today so the demo data always lands inside
// the current reporting periods.

func loadBalancedTeam(ctx context.Context, store *sqlite.Store) error {
	today := generic.Today()
	anchor := today.NextWorkDay()

	users := []sqlite.User{
		{ID: "alice", Name: "Alice Berger", Email: "alice@example.com", WeeklyHours: 40, WorkloadPercent: 100},
		{ID: "bruno", Name: "Bruno Keller", Email: "bruno@example.com", WeeklyHours: 40, WorkloadPercent: 100},
	}
	for _, u := range users {
		if err := store.SaveUser(ctx, u); err != nil {
			return err
		}
	}

	tasks := []sqlite.Task{
		seedTask("Quarterly report", "alice", 12, anchor.AddDays(4)),
		seedTask("Customer onboarding", "alice", 6, anchor.AddDays(2)),
		seedTask("Release review", "bruno", 10, anchor.AddDays(4)),
		seedTask("Ticket triage", "bruno", 4, anchor),
	}
	for _, t := range tasks {
		if err := store.SaveTask(ctx, t); err != nil {
			return err
		}
	}

	// Shared task: reaches Alice both directly and via the assignee list.
	shared := seedTask("Architecture workshop", "alice", 8, anchor.AddDays(3))
	if err := store.SaveTask(ctx, shared); err != nil {
		return err
	}
	if err := store.AddTaskAssignee(ctx, shared.ID, "alice"); err != nil {
		return err
	}
	return store.AddTaskAssignee(ctx, shared.ID, "bruno")
}

func loadOverduePile(ctx context.Context, store *sqlite.Store) error {
	today := generic.Today()

	user := sqlite.User{ID: "carla", Name: "Carla Steiner", Email: "carla@example.com", WeeklyHours: 42, WorkloadPercent: 100}
	if err := store.SaveUser(ctx, user); err != nil {
		return err
	}

	tasks := []sqlite.Task{
		seedTask("Overdue migration", "carla", 16, today.AddDays(-5)),
		seedTask("Overdue bugfix", "carla", 3, today.AddDays(-1)),
		seedTask("Regular feature", "carla", 8, today.NextWorkDay().AddDays(7)),
	}
	for _, t := range tasks {
		if err := store.SaveTask(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func loadPartTimeAbsent(ctx context.Context, store *sqlite.Store) error {
	today := generic.Today()
	weekStart := generic.StartOfWeek(today)

	user := sqlite.User{ID: "dana", Name: "Dana Frei", Email: "dana@example.com", WeeklyHours: 40, WorkloadPercent: 50}
	if err := store.SaveUser(ctx, user); err != nil {
		return err
	}

	if err := store.SaveTask(ctx, seedTask("Background research", "dana", 5, weekStart.AddDays(11))); err != nil {
		return err
	}

	// Two overlapping absences covering the whole work week: Mon-Wed and
	// Wed-Fri. Wednesday must count once.
	absences := []sqlite.Absence{
		{ID: uuid.NewString(), UserID: "dana", Start: weekStart, End: weekStart.AddDays(2), Reason: "vacation"},
		{ID: uuid.NewString(), UserID: "dana", Start: weekStart.AddDays(2), End: weekStart.AddDays(4), Reason: "vacation"},
	}
	for _, a := range absences {
		if err := store.SaveAbsence(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func seedTask(title, assignee string, estimated float64, due generic.TimePoint) sqlite.Task {
	est := estimated
	return sqlite.Task{
		ID:             uuid.NewString(),
		Title:          title,
		AssigneeID:     assignee,
		EstimatedHours: &est,
		DueDate:        &due,
	}
}
