/*
handlers.go - HTTP API handlers for the workload engine

PURPOSE:
  Exposes the projection engine and its thin CRUD surface via REST.
  Handles HTTP request/response, JSON serialization, and delegates to
  the domain logic.

ENDPOINTS:
  Workload:
    GET    /api/workload               Day/week/month projection per user

  Users:
    GET    /api/users                  List users
    POST   /api/users                  Create user
    GET    /api/users/{id}             Get user

  Tasks:
    POST   /api/tasks                  Create task
    POST   /api/tasks/{id}/assignees   Add secondary assignee
    POST   /api/tasks/{id}/complete    Mark task completed

  Absences:
    POST   /api/absences               Record absence interval

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario
    POST   /api/scenarios/reset        Clear all data

CALLER IDENTITY:
  Authentication and role resolution live upstream. The upstream layer
  forwards the resolved identity as headers, which are trusted here:
    X-User-ID:   the caller's user ID (required for /api/workload)
    X-Elevated:  "true" when the caller holds an elevated role
  The engine still refuses to widen scope: a non-elevated caller may
  only request their own workload.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing caller identity
  - 403: Scope violations
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warp/workload-engine/generic"
	"github.com/warp/workload-engine/store/sqlite"
	"github.com/warp/workload-engine/workload"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Service *workload.Service
	Log     *logrus.Logger
}

// NewHandler creates a new handler over the given store.
func NewHandler(store *sqlite.Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Store:   store,
		Service: workload.NewService(store),
		Log:     log,
	}
}

// =============================================================================
// WORKLOAD HANDLER
// =============================================================================

// GetWorkload runs the day/week/month projection for the requested users.
// GET /api/workload?user_ids=u1,u2&as_of=2026-08-30
func (h *Handler) GetWorkload(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing X-User-ID header", nil)
		return
	}

	var userIDs []string
	if raw := r.URL.Query().Get("user_ids"); raw != "" {
		userIDs = strings.Split(raw, ",")
	}

	today := generic.Today()
	if asOf := r.URL.Query().Get("as_of"); asOf != "" {
		parsed, err := generic.ParseDay(asOf)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of format (use YYYY-MM-DD)", err)
			return
		}
		today = parsed
	}

	results, err := h.Service.Report(r.Context(), caller, userIDs, today)
	if err != nil {
		switch {
		case errors.Is(err, generic.ErrScopeDenied):
			writeError(w, http.StatusForbidden, "Requested users outside caller scope", err)
		case generic.IsClientError(err):
			writeError(w, http.StatusBadRequest, "Invalid workload request", err)
		default:
			h.Log.WithError(err).Error("workload projection failed")
			writeError(w, http.StatusInternalServerError, "Failed to compute workload", err)
		}
		return
	}

	dtos := make([]WorkloadDTO, len(results))
	for i, res := range results {
		dtos[i] = NewWorkloadDTO(res)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// callerFrom reads the upstream-resolved identity headers.
func callerFrom(r *http.Request) (workload.Caller, bool) {
	id := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if id == "" {
		return workload.Caller{}, false
	}
	return workload.Caller{
		UserID:   id,
		Elevated: strings.EqualFold(r.Header.Get("X-Elevated"), "true"),
	}, true
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns all users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = UserDTO{
			ID:              u.ID,
			Name:            u.Name,
			Email:           u.Email,
			WeeklyHours:     u.WeeklyHours,
			WorkloadPercent: u.WorkloadPercent,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetUser returns a single user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.Store.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get user", err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, UserDTO{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		WeeklyHours:     u.WeeklyHours,
		WorkloadPercent: u.WorkloadPercent,
	})
}

// CreateUser creates a new user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}
	if req.WeeklyHours < 0 || req.WorkloadPercent < 0 {
		writeError(w, http.StatusBadRequest, "weekly_hours and workload_percent must not be negative", nil)
		return
	}

	u := sqlite.User{
		ID:              req.ID,
		Name:            req.Name,
		Email:           req.Email,
		WeeklyHours:     req.WeeklyHours,
		WorkloadPercent: req.WorkloadPercent,
	}
	if err := h.Store.SaveUser(r.Context(), u); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	writeJSON(w, http.StatusCreated, UserDTO{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		WeeklyHours:     u.WeeklyHours,
		WorkloadPercent: u.WorkloadPercent,
	})
}

// =============================================================================
// TASK HANDLERS
// =============================================================================

// CreateTask creates a new task.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	var due *generic.TimePoint
	if req.DueDate != nil {
		d, err := generic.ParseDay(*req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid due_date format (use YYYY-MM-DD)", err)
			return
		}
		due = &d
	}

	task := sqlite.Task{
		ID:             req.ID,
		Title:          req.Title,
		AssigneeID:     req.AssigneeID,
		EstimatedHours: req.EstimatedHours,
		DueDate:        due,
	}
	if err := h.Store.SaveTask(r.Context(), task); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create task", err)
		return
	}

	writeJSON(w, http.StatusCreated, TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		AssigneeID:     task.AssigneeID,
		EstimatedHours: task.EstimatedHours,
		DueDate:        req.DueDate,
	})
}

// AddTaskAssignee links a user to a task via the secondary assignee list.
func (h *Handler) AddTaskAssignee(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	var req AddAssigneeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	task, err := h.Store.GetTask(r.Context(), taskID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get task", err)
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "Task not found", nil)
		return
	}

	if err := h.Store.AddTaskAssignee(r.Context(), taskID, req.UserID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to add assignee", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"task_id": taskID, "user_id": req.UserID})
}

// CompleteTask marks a task completed.
func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	if err := h.Store.CompleteTask(r.Context(), taskID); err != nil {
		if generic.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Task not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to complete task", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"task_id": taskID, "completed": true})
}

// =============================================================================
// ABSENCE HANDLERS
// =============================================================================

// CreateAbsence records a whole-day absence interval.
func (h *Handler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var req CreateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	start, err := generic.ParseDay(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	end, err := generic.ParseDay(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end_date must not be before start_date", nil)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	absence := sqlite.Absence{
		ID:     req.ID,
		UserID: req.UserID,
		Start:  start,
		End:    end,
		Reason: req.Reason,
	}
	if err := h.Store.SaveAbsence(r.Context(), absence); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record absence", err)
		return
	}

	writeJSON(w, http.StatusCreated, AbsenceDTO{
		ID:        absence.ID,
		UserID:    absence.UserID,
		StartDate: absence.Start.String(),
		EndDate:   absence.End.String(),
		Reason:    absence.Reason,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
