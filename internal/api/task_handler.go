package api

import (
	"log/slog"
	"net/http"

	"github.com/taskgrove/taskgrove-api/internal/api/shared"
	"github.com/taskgrove/taskgrove-api/internal/domain"
	"github.com/taskgrove/taskgrove-api/internal/service"
)

// TaskHandler handles task-related API requests. All operations are scoped
// to the authenticated caller's identity.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /tasks. It returns the caller's tasks, newest first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	tasks, err := h.taskService.List(r.Context(), identity.UserID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := h.taskService.Get(r.Context(), identity.UserID, taskID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.Create(r.Context(), identity.UserID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    domain.TaskPriority(req.Priority),
		Status:      domain.TaskStatus(req.Status),
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Update handles PUT /tasks/{id}. Absent fields keep their stored values.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		patch.Status = &s
	}

	task, err := h.taskService.Update(r.Context(), identity.UserID, taskID, patch)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	if err := h.taskService.Delete(r.Context(), identity.UserID, taskID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{ID: taskID.String()})
}

// Stats handles GET /tasks/stats.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	stats, err := h.taskService.Stats(r.Context(), identity.UserID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// respondServiceError translates service layer errors into HTTP responses.
func (h *TaskHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
