package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskgrove/taskgrove-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// The store deliberately knows nothing about ownership policy: it retrieves
// and mutates records by ID, and it is the service layer's job to compare a
// task's owner against the caller before acting on it. ListByUser and
// CountsByUser are the only owner-scoped queries, backed by the owner index.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of owner.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByUser retrieves all tasks owned by the given user, most recently
	// created first. Returns an empty slice when the user has no tasks.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update persists the full state of an existing task in a single
	// statement. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountsByUser aggregates the given user's tasks by status and priority.
	// The counts reflect the store's state at call time.
	CountsByUser(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error)
}
