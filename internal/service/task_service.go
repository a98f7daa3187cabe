package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskgrove/taskgrove-api/internal/domain"
	"github.com/taskgrove/taskgrove-api/internal/platform/logger"
	"github.com/taskgrove/taskgrove-api/internal/store"
)

// CreateTaskInput carries the client-supplied fields for a new task.
// The owner is never part of the input; it always comes from the
// authenticated caller.
type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
	Priority    domain.TaskPriority
	Status      domain.TaskStatus
	DueDate     *time.Time
}

// TaskService provides ownership-scoped task operations. Every method takes
// the authenticated caller's user ID; single-record operations check
// existence first, then ownership, so "not found" and "forbidden" stay
// distinguishable.
type TaskService interface {
	// List returns all tasks owned by the user, most recently created first.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Get returns a single task by ID.
	// Returns store.ErrTaskNotFound if no task has that ID.
	// Returns ErrTaskNotOwned if the task exists but belongs to another user.
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// Create persists a new task owned by the user. Title is required;
	// invalid enum values are rejected with a validation error.
	Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// Update applies a partial patch to a task the user owns, returning the
	// updated record. Same existence/ownership checks as Get. The owner field
	// is never patched.
	Update(ctx context.Context, userID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task the user owns. Same existence/ownership checks
	// as Get.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// Stats aggregates the user's current tasks by status and priority.
	Stats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error)
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// Verify interface compliance at compile time
var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService backed by the given store.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) TaskService {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// requireOwner verifies that the task belongs to the given user.
// Every single-record operation funnels through this check.
func requireOwner(task *domain.Task, userID uuid.UUID) error {
	if task.UserID != userID {
		return ErrTaskNotOwned
	}
	return nil
}

// getOwned fetches a task by ID and verifies ownership, in that order.
func (s *taskServiceImpl) getOwned(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found",
				slog.String("task_id", taskID.String()))
			return nil, store.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if err := requireOwner(task, userID); err != nil {
		log.Warn("user does not own task",
			slog.String("user_id", userID.String()),
			slog.String("task_id", taskID.String()),
			slog.String("owner_id", task.UserID.String()))
		return nil, err
	}

	return task, nil
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	log.Debug("listed tasks",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Get implements TaskService.Get.
func (s *taskServiceImpl) Get(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	return s.getOwned(ctx, userID, taskID)
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(
		userID,
		input.Title,
		input.Description,
		input.Category,
		input.Priority,
		input.Status,
		input.DueDate,
	)
	if err != nil {
		log.Debug("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("status", string(task.Status)),
		slog.String("priority", string(task.Priority)))
	return task, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := task.Apply(patch); err != nil {
		log.Debug("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		if store.IsNotFoundError(err) {
			// Deleted between read and write; surface as not found.
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	log.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	return task, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.getOwned(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	log.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// Stats implements TaskService.Stats.
func (s *taskServiceImpl) Stats(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.TaskStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats, err := s.taskStore.CountsByUser(ctx, userID)
	if err != nil {
		log.Error("failed to compute task stats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to compute task stats: %w", err)
	}

	log.Debug("computed task stats",
		slog.String("user_id", userID.String()),
		slog.Int("total", stats.TotalTasks))
	return stats, nil
}
