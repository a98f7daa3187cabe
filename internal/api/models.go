package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskgrove/taskgrove-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Username is the authenticated user's display name
	Username string `json:"username"`

	// Token is the signed bearer token used for API authorization
	Token string `json:"token"`

	// ExpiresAt is the ISO 8601 timestamp when the token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// UserResponse defines the response for the current-user endpoint.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskRequest defines the payload for creating a task. Omitted
// category, priority, and status take their documented defaults; supplied
// values outside the enumerations are rejected.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=High Medium Low"`
	Status      string     `json:"status"      validate:"omitempty,oneof=Pending 'In Progress' Completed"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest defines the payload for partially updating a task.
// Absent fields are left unchanged. The owner is not patchable.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Status      *string    `json:"status"   validate:"omitempty,oneof=Pending 'In Progress' Completed"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskResponse represents the response data for a single task.
type TaskResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DeleteTaskResponse confirms a deletion by echoing the removed task's id.
type DeleteTaskResponse struct {
	ID string `json:"id"`
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
