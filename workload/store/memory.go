// Package store provides Directory implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/workload-engine/generic"
	"github.com/warp/workload-engine/workload"
)

// =============================================================================
// MEMORY DIRECTORY - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	profiles map[string]workload.UserProfile
	tasks    map[string][]workload.OpenTask
	absences map[string][]workload.AbsenceInterval
}

func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]workload.UserProfile),
		tasks:    make(map[string][]workload.OpenTask),
		absences: make(map[string][]workload.AbsenceInterval),
	}
}

// PutProfile registers a user.
func (m *Memory) PutProfile(p workload.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
}

// AddTask attaches a task to a user. Adding the same task through two
// paths is allowed; ListOpenTasks returns the duplicates as a real
// association table would.
func (m *Memory) AddTask(userID string, t workload.OpenTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[userID] = append(m.tasks[userID], t)
}

// AddAbsence records an absence interval for a user.
func (m *Memory) AddAbsence(userID string, a workload.AbsenceInterval) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.absences[userID] = append(m.absences[userID], a)
}

func (m *Memory) GetProfile(_ context.Context, userID string) (*workload.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) ListOpenTasks(_ context.Context, userID string) ([]workload.OpenTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]workload.OpenTask, len(m.tasks[userID]))
	copy(result, m.tasks[userID])
	return result, nil
}

func (m *Memory) ListAbsences(_ context.Context, userID string, from, to generic.TimePoint) ([]workload.AbsenceInterval, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []workload.AbsenceInterval
	for _, a := range m.absences[userID] {
		if a.Start.BeforeOrEqual(to) && a.End.AfterOrEqual(from) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })
	return result, nil
}
