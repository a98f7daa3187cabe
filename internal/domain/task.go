package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")
)

// TaskPriority is the urgency bucket of a task.
type TaskPriority string

// Allowed priority values.
const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// DefaultPriority is assigned when a task is created without a priority.
const DefaultPriority = PriorityMedium

// TaskPriorities lists every allowed priority value.
func TaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid reports whether the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TaskStatus is the progress state of a task. Any status may transition to
// any other; no workflow constraints are enforced.
type TaskStatus string

// Allowed status values.
const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// DefaultStatus is assigned when a task is created without a status.
const DefaultStatus = StatusPending

// TaskStatuses lists every allowed status value.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

// IsValid reports whether the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// DefaultCategory is the bucket tasks land in when none is supplied.
const DefaultCategory = "General"

// Task represents a single to-do item owned by exactly one user.
// UserID is set once at creation from the authenticated caller and is never
// mutated afterwards.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user. Title is required;
// category, priority, and status fall back to their documented defaults when
// empty. Invalid priority or status values are rejected rather than
// silently defaulted.
func NewTask(
	userID uuid.UUID,
	title, description, category string,
	priority TaskPriority,
	status TaskStatus,
	dueDate *time.Time,
) (*Task, error) {
	if category == "" {
		category = DefaultCategory
	}
	if priority == "" {
		priority = DefaultPriority
	}
	if status == "" {
		status = DefaultStatus
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    category,
		Priority:    priority,
		Status:      status,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	if !t.Priority.IsValid() {
		return NewValidationError("priority", "must be one of High, Medium, Low", ErrInvalidPriority)
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", "must be one of Pending, In Progress, Completed", ErrInvalidStatus)
	}

	return nil
}

// TaskPatch carries a partial update to a task. Nil fields are left
// untouched; the owner is deliberately not representable here.
type TaskPatch struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *TaskPriority
	Status      *TaskStatus
	DueDate     *time.Time
	// ClearDueDate removes the due date; it wins over DueDate when both are set.
	ClearDueDate bool
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.Priority == nil &&
		p.Status == nil &&
		p.DueDate == nil &&
		!p.ClearDueDate
}

// Apply merges the patch into the task, refreshing UpdatedAt, and validates
// the result. The task is left unchanged if the patched record would be
// invalid.
func (t *Task) Apply(patch TaskPatch) error {
	updated := *t

	if patch.Title != nil {
		updated.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		updated.Category = *patch.Category
		if updated.Category == "" {
			updated.Category = DefaultCategory
		}
	}
	if patch.Priority != nil {
		updated.Priority = *patch.Priority
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.ClearDueDate {
		updated.DueDate = nil
	} else if patch.DueDate != nil {
		updated.DueDate = patch.DueDate
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*t = updated
	return nil
}

// TaskStats aggregates a single user's tasks by status and by priority.
// Both partitions sum to TotalTasks.
type TaskStats struct {
	TotalTasks      int `json:"totalTasks"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
	HighPriority    int `json:"highPriority"`
	MediumPriority  int `json:"mediumPriority"`
	LowPriority     int `json:"lowPriority"`
}
