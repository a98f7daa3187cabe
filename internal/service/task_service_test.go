package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskgrove/taskgrove-api/internal/domain"
	"github.com/taskgrove/taskgrove-api/internal/mocks"
	"github.com/taskgrove/taskgrove-api/internal/service"
	"github.com/taskgrove/taskgrove-api/internal/store"
)

func newService(t *testing.T) (service.TaskService, *mocks.MockTaskStore) {
	t.Helper()
	taskStore := mocks.NewMockTaskStore()
	return service.NewTaskService(taskStore, nil), taskStore
}

func mustCreate(
	t *testing.T,
	svc service.TaskService,
	userID uuid.UUID,
	input service.CreateTaskInput,
) *domain.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), userID, input)
	require.NoError(t, err)
	return task
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	alice := uuid.New()
	due := time.Now().UTC().Add(72 * time.Hour)

	created := mustCreate(t, svc, alice, service.CreateTaskInput{
		Title:       "Prepare demo",
		Description: "slides and script",
		Category:    "Work",
		Priority:    domain.PriorityHigh,
		Status:      domain.StatusInProgress,
		DueDate:     &due,
	})

	got, err := svc.Get(ctx, alice, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, alice, got.UserID, "owner is forced to the creator")
	assert.Equal(t, "Prepare demo", got.Title)
	assert.Equal(t, "slides and script", got.Description)
	assert.Equal(t, "Work", got.Category)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	svc, taskStore := newService(t)
	ctx := context.Background()
	alice := uuid.New()

	t.Run("empty title rejected, nothing persisted", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, service.CreateTaskInput{Title: ""})
		assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)
		assert.Zero(t, taskStore.Len())
	})

	t.Run("invalid enum rejected, nothing persisted", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, service.CreateTaskInput{
			Title:    "Task",
			Priority: domain.TaskPriority("Urgent"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
		assert.Zero(t, taskStore.Len())
	})

	t.Run("defaults applied", func(t *testing.T) {
		task := mustCreate(t, svc, alice, service.CreateTaskInput{Title: "Defaults"})
		assert.Equal(t, domain.DefaultCategory, task.Category)
		assert.Equal(t, domain.DefaultPriority, task.Priority)
		assert.Equal(t, domain.DefaultStatus, task.Status)
	})
}

func TestListIsOwnerScoped(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	a1 := mustCreate(t, svc, alice, service.CreateTaskInput{Title: "alice task 1"})
	a2 := mustCreate(t, svc, alice, service.CreateTaskInput{Title: "alice task 2"})
	mustCreate(t, svc, bob, service.CreateTaskInput{Title: "bob task"})

	aliceTasks, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 2)

	ids := []uuid.UUID{aliceTasks[0].ID, aliceTasks[1].ID}
	assert.Contains(t, ids, a1.ID)
	assert.Contains(t, ids, a2.ID)
	for _, task := range aliceTasks {
		assert.Equal(t, alice, task.UserID)
	}

	bobTasks, err := svc.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobTasks, 1)
	assert.NotContains(t, ids, bobTasks[0].ID)

	// A user with no tasks gets an empty list, not an error.
	empty, err := svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetDistinguishesNotFoundFromForbidden(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	task := mustCreate(t, svc, alice, service.CreateTaskInput{Title: "private"})

	// Nonexistent ID: not found, for anyone.
	_, err := svc.Get(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	// Existing ID, wrong owner: forbidden, not "not found".
	_, err = svc.Get(ctx, bob, task.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotOwned)
	assert.NotErrorIs(t, err, store.ErrTaskNotFound)
}

func TestUpdatePartialPatch(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	alice := uuid.New()
	due := time.Now().UTC().Add(24 * time.Hour)

	task := mustCreate(t, svc, alice, service.CreateTaskInput{
		Title:       "Original",
		Description: "desc",
		Category:    "Home",
		Priority:    domain.PriorityLow,
		DueDate:     &due,
	})

	status := domain.StatusCompleted
	updated, err := svc.Update(ctx, alice, task.ID, domain.TaskPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, task.Title, updated.Title)
	assert.Equal(t, task.Description, updated.Description)
	assert.Equal(t, task.Category, updated.Category)
	assert.Equal(t, task.Priority, updated.Priority)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(due))
	assert.Equal(t, alice, updated.UserID)
	assert.True(t, !updated.UpdatedAt.Before(task.UpdatedAt))

	// The change was persisted.
	got, err := svc.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestUpdateErrors(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	task := mustCreate(t, svc, alice, service.CreateTaskInput{Title: "Task"})
	title := "New title"

	t.Run("empty patch", func(t *testing.T) {
		_, err := svc.Update(ctx, alice, task.ID, domain.TaskPatch{})
		assert.ErrorIs(t, err, service.ErrEmptyPatch)
	})

	t.Run("nonexistent task", func(t *testing.T) {
		_, err := svc.Update(ctx, alice, uuid.New(), domain.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("wrong owner", func(t *testing.T) {
		_, err := svc.Update(ctx, bob, task.ID, domain.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, service.ErrTaskNotOwned)

		// The record is untouched.
		got, err := svc.Get(ctx, alice, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Task", got.Title)
	})

	t.Run("invalid enum in patch", func(t *testing.T) {
		bad := domain.TaskStatus("Done")
		_, err := svc.Update(ctx, alice, task.ID, domain.TaskPatch{Status: &bad})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	task := mustCreate(t, svc, alice, service.CreateTaskInput{Title: "Disposable"})

	t.Run("cross-user delete is forbidden and leaves the task intact", func(t *testing.T) {
		err := svc.Delete(ctx, bob, task.ID)
		assert.ErrorIs(t, err, service.ErrTaskNotOwned)

		got, err := svc.Get(ctx, alice, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("owner delete removes the task", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, alice, task.ID))

		_, err := svc.Get(ctx, alice, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("deleting a nonexistent task is not found", func(t *testing.T) {
		err := svc.Delete(ctx, alice, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestStatsMatchList(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	seed := []service.CreateTaskInput{
		{Title: "t1", Status: domain.StatusPending, Priority: domain.PriorityHigh},
		{Title: "t2", Status: domain.StatusPending, Priority: domain.PriorityLow},
		{Title: "t3", Status: domain.StatusInProgress, Priority: domain.PriorityMedium},
		{Title: "t4", Status: domain.StatusCompleted, Priority: domain.PriorityHigh},
		{Title: "t5", Status: domain.StatusCompleted, Priority: domain.PriorityMedium},
	}
	for _, input := range seed {
		mustCreate(t, svc, alice, input)
	}
	// Bob's tasks must not leak into alice's stats.
	mustCreate(t, svc, bob, service.CreateTaskInput{Title: "bob", Priority: domain.PriorityHigh})

	stats, err := svc.Stats(ctx, alice)
	require.NoError(t, err)

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)

	assert.Equal(t, len(list), stats.TotalTasks)
	assert.Equal(t, stats.TotalTasks,
		stats.PendingTasks+stats.InProgressTasks+stats.CompletedTasks,
		"status partition must sum to total")
	assert.Equal(t, stats.TotalTasks,
		stats.HighPriority+stats.MediumPriority+stats.LowPriority,
		"priority partition must sum to total")

	assert.Equal(t, 2, stats.PendingTasks)
	assert.Equal(t, 1, stats.InProgressTasks)
	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Equal(t, 2, stats.HighPriority)
	assert.Equal(t, 2, stats.MediumPriority)
	assert.Equal(t, 1, stats.LowPriority)

	// Empty user: all zeroes.
	empty, err := svc.Stats(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty.TotalTasks)
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	svc := service.NewTaskService(taskStore, nil)
	ctx := context.Background()
	alice := uuid.New()

	taskStore.Err = assert.AnError

	_, err := svc.List(ctx, alice)
	assert.ErrorIs(t, err, assert.AnError)

	_, err = svc.Stats(ctx, alice)
	assert.ErrorIs(t, err, assert.AnError)

	_, err = svc.Create(ctx, alice, service.CreateTaskInput{Title: "Task"})
	assert.ErrorIs(t, err, assert.AnError)
}
