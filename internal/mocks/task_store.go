package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/taskgrove/taskgrove-api/internal/domain"
	"github.com/taskgrove/taskgrove-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation is a thread-safe in-memory map so service tests can exercise
// real create/get/update/delete flows without a database.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, task *domain.Task) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByUserFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	UpdateFn       func(ctx context.Context, task *domain.Task) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
	CountsByUserFn func(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error)

	// Err, when set, is returned by every default implementation.
	Err error

	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
}

// Verify interface compliance at compile time
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Seed adds a task directly to the in-memory map.
func (m *MockTaskStore) Seed(task *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *task
	m.tasks[task.ID] = &copied
}

// Len reports how many tasks the store currently holds.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Create implements the store.TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

// GetByID implements the store.TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// ListByUser implements the store.TaskStore interface.
func (m *MockTaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := []*domain.Task{}
	for _, task := range m.tasks {
		if task.UserID == userID {
			copied := *task
			tasks = append(tasks, &copied)
		}
	}

	// Newest first, matching the real store's index order.
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// Update implements the store.TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

// Delete implements the store.TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// CountsByUser implements the store.TaskStore interface.
func (m *MockTaskStore) CountsByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.TaskStats, error) {
	if m.CountsByUserFn != nil {
		return m.CountsByUserFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &domain.TaskStats{}
	for _, task := range m.tasks {
		if task.UserID != userID {
			continue
		}
		stats.TotalTasks++
		switch task.Status {
		case domain.StatusPending:
			stats.PendingTasks++
		case domain.StatusInProgress:
			stats.InProgressTasks++
		case domain.StatusCompleted:
			stats.CompletedTasks++
		}
		switch task.Priority {
		case domain.PriorityHigh:
			stats.HighPriority++
		case domain.PriorityMedium:
			stats.MediumPriority++
		case domain.PriorityLow:
			stats.LowPriority++
		}
	}
	return stats, nil
}
