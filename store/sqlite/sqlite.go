/*
Package sqlite provides the SQLite-backed directory for the workload engine.

PURPOSE:
  Persists users, tasks, task assignments, and absences, and serves the
  simple key/range lookups the projection engine needs. In production the
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  workload.Directory: GetProfile, ListOpenTasks, ListAbsences

KEY TABLES:
  users:          Identity + capacity profile (weekly hours, workload %)
  tasks:          Tasks with optional estimate/due date, direct assignee
  task_assignees: Secondary many-to-many assignee list
  absences:       Whole-day unavailability intervals

DUAL ASSIGNMENT:
  A task can reach a user both through tasks.assignee_id and through
  task_assignees. ListOpenTasks unions both paths WITHOUT deduplicating -
  collapsing duplicates by task ID is the engine's documented job, and
  keeping the raw union here is what exercises that contract.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency.

USAGE:
  store, err := sqlite.New("./data/workload.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := workload.NewService(store)

SEE ALSO:
  - workload/service.go: Directory interface definition
  - api/handlers.go: CRUD boundary over this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/warp/workload-engine/generic"
	"github.com/warp/workload-engine/workload"
)

// Store implements workload.Directory using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Users (identity + capacity profile)
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		weekly_hours REAL NOT NULL DEFAULT 40,
		workload_percent INTEGER NOT NULL DEFAULT 100,
		created_at TEXT NOT NULL
	);

	-- Tasks (direct-assignee path)
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		assignee_id TEXT,
		estimated_hours REAL,
		due_date TEXT,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_assignee
		ON tasks(assignee_id) WHERE completed = FALSE;
	CREATE INDEX IF NOT EXISTS idx_tasks_due
		ON tasks(due_date) WHERE due_date IS NOT NULL;

	-- Secondary assignee list (many-to-many path)
	CREATE TABLE IF NOT EXISTS task_assignees (
		task_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		PRIMARY KEY (task_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_task_assignees_user
		ON task_assignees(user_id);

	-- Absences (inclusive whole-day intervals)
	CREATE TABLE IF NOT EXISTS absences (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		reason TEXT,
		created_at TEXT NOT NULL
	);

	-- Hot path: absence window lookups per user
	CREATE INDEX IF NOT EXISTS idx_absences_user_range
		ON absences(user_id, start_date, end_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USERS
// =============================================================================

// User is the persisted identity + capacity record.
type User struct {
	ID              string
	Name            string
	Email           string
	WeeklyHours     float64
	WorkloadPercent int
	CreatedAt       time.Time
}

// SaveUser inserts or replaces a user.
func (s *Store) SaveUser(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO users (id, name, email, weekly_hours, workload_percent, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.WeeklyHours, u.WorkloadPercent, u.CreatedAt.Format(time.RFC3339))
	return err
}

// GetUser returns a user or nil if not found.
func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, weekly_hours, workload_percent, created_at
		FROM users WHERE id = ?`, id)

	var u User
	var createdAt string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.WeeklyHours, &u.WorkloadPercent, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// ListUsers returns all users ordered by name.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, weekly_hours, workload_percent, created_at
		FROM users ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var createdAt string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.WeeklyHours, &u.WorkloadPercent, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		users = append(users, u)
	}
	return users, rows.Err()
}

// =============================================================================
// TASKS
// =============================================================================

// Task is the persisted task record. EstimatedHours and DueDate are
// optional by design: an unestimated task contributes zero hours.
type Task struct {
	ID             string
	Title          string
	AssigneeID     string
	EstimatedHours *float64
	DueDate        *generic.TimePoint
	Completed      bool
	CreatedAt      time.Time
}

// SaveTask inserts or replaces a task.
func (s *Store) SaveTask(ctx context.Context, t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	var due sql.NullString
	if t.DueDate != nil {
		due = sql.NullString{String: t.DueDate.String(), Valid: true}
	}
	var est sql.NullFloat64
	if t.EstimatedHours != nil {
		est = sql.NullFloat64{Float64: *t.EstimatedHours, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tasks (id, title, assignee_id, estimated_hours, due_date, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.AssigneeID, est, due, t.Completed, t.CreatedAt.Format(time.RFC3339))
	return err
}

// GetTask returns a task or nil if not found.
func (s *Store) GetTask(ctx context.Context, id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, assignee_id, estimated_hours, due_date, completed, created_at
		FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CompleteTask marks a task completed. Completed tasks drop out of every
// projection immediately.
func (s *Store) CompleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = TRUE WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return generic.ErrTaskNotFound
	}
	return nil
}

// AddTaskAssignee links a user to a task through the secondary
// many-to-many path.
func (s *Store) AddTaskAssignee(ctx context.Context, taskID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO task_assignees (task_id, user_id) VALUES (?, ?)`,
		taskID, userID)
	return err
}

type taskScanner interface {
	Scan(dest ...any) error
}

func scanTask(row taskScanner) (*Task, error) {
	var t Task
	var assignee sql.NullString
	var est sql.NullFloat64
	var due sql.NullString
	var createdAt string
	if err := row.Scan(&t.ID, &t.Title, &assignee, &est, &due, &t.Completed, &createdAt); err != nil {
		return nil, err
	}
	t.AssigneeID = assignee.String
	if est.Valid {
		v := est.Float64
		t.EstimatedHours = &v
	}
	if due.Valid {
		d, err := generic.ParseDay(due.String)
		if err != nil {
			return nil, fmt.Errorf("task %s: bad due_date %q: %w", t.ID, due.String, err)
		}
		t.DueDate = &d
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &t, nil
}

// =============================================================================
// ABSENCES
// =============================================================================

// Absence is the persisted absence record.
type Absence struct {
	ID        string
	UserID    string
	Start     generic.TimePoint
	End       generic.TimePoint
	Reason    string
	CreatedAt time.Time
}

// SaveAbsence inserts or replaces an absence.
func (s *Store) SaveAbsence(ctx context.Context, a Absence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.End.Before(a.Start) {
		return generic.ErrInvalidPeriod
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO absences (id, user_id, start_date, end_date, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Start.String(), a.End.String(), a.Reason, a.CreatedAt.Format(time.RFC3339))
	return err
}

// =============================================================================
// DIRECTORY IMPLEMENTATION (workload.Directory)
// =============================================================================

// GetProfile returns the identity + capacity profile, or (nil, nil) when
// the user does not exist.
func (s *Store) GetProfile(ctx context.Context, userID string) (*workload.UserProfile, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	return &workload.UserProfile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Capacity: workload.CapacityProfile{
			WeeklyHours:     u.WeeklyHours,
			WorkloadPercent: u.WorkloadPercent,
		},
	}, nil
}

// ListOpenTasks returns uncompleted tasks reachable through either
// association path. Duplicates are intentionally preserved (UNION ALL);
// the engine deduplicates by task ID.
func (s *Store) ListOpenTasks(ctx context.Context, userID string) ([]workload.OpenTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, assignee_id, estimated_hours, due_date, completed, created_at
		FROM tasks WHERE assignee_id = ? AND completed = FALSE
		UNION ALL
		SELECT t.id, t.title, t.assignee_id, t.estimated_hours, t.due_date, t.completed, t.created_at
		FROM tasks t
		JOIN task_assignees ta ON ta.task_id = t.id
		WHERE ta.user_id = ? AND t.completed = FALSE
		ORDER BY id`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []workload.OpenTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, workload.OpenTask{
			ID:             t.ID,
			Title:          t.Title,
			EstimatedHours: t.EstimatedHours,
			DueDate:        t.DueDate,
			Completed:      t.Completed,
		})
	}
	return tasks, rows.Err()
}

// ListAbsences returns the user's absences overlapping [from, to].
func (s *Store) ListAbsences(ctx context.Context, userID string, from, to generic.TimePoint) ([]workload.AbsenceInterval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT start_date, end_date FROM absences
		WHERE user_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date`, userID, to.String(), from.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var absences []workload.AbsenceInterval
	for rows.Next() {
		var start, end string
		if err := rows.Scan(&start, &end); err != nil {
			return nil, err
		}
		startDay, err := generic.ParseDay(start)
		if err != nil {
			return nil, fmt.Errorf("absence for %s: bad start_date %q: %w", userID, start, err)
		}
		endDay, err := generic.ParseDay(end)
		if err != nil {
			return nil, fmt.Errorf("absence for %s: bad end_date %q: %w", userID, end, err)
		}
		absences = append(absences, workload.AbsenceInterval{Start: startDay, End: endDay})
	}
	return absences, rows.Err()
}

// =============================================================================
// RESET - Demo scenarios only
// =============================================================================

// Reset clears all data. Only used by the demo scenario loaders.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logrus.Warn("resetting workload store: all data will be deleted")
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM task_assignees;
		DELETE FROM tasks;
		DELETE FROM absences;
		DELETE FROM users;`)
	return err
}
