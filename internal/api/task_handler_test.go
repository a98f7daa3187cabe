package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgrove/taskgrove-api/internal/api"
	"github.com/taskgrove/taskgrove-api/internal/api/shared"
	"github.com/taskgrove/taskgrove-api/internal/domain"
	"github.com/taskgrove/taskgrove-api/internal/mocks"
	"github.com/taskgrove/taskgrove-api/internal/service"
)

// taskTestEnv wires a TaskHandler behind a real chi router so URL parameter
// extraction behaves exactly as it does in production.
type taskTestEnv struct {
	router    *chi.Mux
	taskStore *mocks.MockTaskStore
	userID    uuid.UUID
}

func newTaskTestEnv(t *testing.T) *taskTestEnv {
	t.Helper()

	env := &taskTestEnv{
		taskStore: mocks.NewMockTaskStore(),
		userID:    uuid.New(),
	}

	handler := api.NewTaskHandler(service.NewTaskService(env.taskStore, nil), nil)

	env.router = chi.NewRouter()
	env.router.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/stats", handler.Stats)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return env
}

// do issues a request as the env's user. Pass asUser to act as someone else,
// or uuid.Nil to send the request unauthenticated.
func (env *taskTestEnv) do(t *testing.T, method, path, body string, asUser ...uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	userID := env.userID
	if len(asUser) > 0 {
		userID = asUser[0]
	}
	if userID != uuid.Nil {
		ctx := shared.WithIdentity(req.Context(), shared.Identity{
			UserID:   userID,
			Username: "tester",
		})
		req = req.WithContext(ctx)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *taskTestEnv) seedTask(t *testing.T, title string, owner uuid.UUID) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(owner, title, "", "", "", "", nil)
	require.NoError(t, err)
	env.taskStore.Seed(task)
	return task
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) api.TaskResponse {
	t.Helper()

	var resp api.TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/tasks", `{"title": "Buy groceries"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeTask(t, w)
		assert.Equal(t, "Buy groceries", resp.Title)
		assert.Equal(t, "General", resp.Category)
		assert.Equal(t, "Medium", resp.Priority)
		assert.Equal(t, "Pending", resp.Status)
		assert.Equal(t, env.userID.String(), resp.UserID)
		assert.Equal(t, 1, env.taskStore.Len())
	})

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
		payload := fmt.Sprintf(
			`{"title": "File taxes", "description": "Federal and state", "category": "Finance", "priority": "High", "status": "In Progress", "due_date": %q}`,
			due.Format(time.RFC3339))

		w := env.do(t, http.MethodPost, "/api/tasks", payload)

		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeTask(t, w)
		assert.Equal(t, "High", resp.Priority)
		assert.Equal(t, "In Progress", resp.Status)
		assert.Equal(t, "Finance", resp.Category)
		require.NotNil(t, resp.DueDate)
		assert.True(t, resp.DueDate.Equal(due))
	})

	t.Run("rejections", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			payload string
		}{
			{name: "missing title", payload: `{"description": "no title"}`},
			{name: "blank title", payload: `{"title": "   "}`},
			{name: "invalid priority", payload: `{"title": "x", "priority": "Urgent"}`},
			{name: "lowercase priority", payload: `{"title": "x", "priority": "high"}`},
			{name: "invalid status", payload: `{"title": "x", "status": "Done"}`},
			{name: "malformed JSON", payload: `{"title": `},
		}

		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				env := newTaskTestEnv(t)

				w := env.do(t, http.MethodPost, "/api/tasks", tc.payload)
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, 0, env.taskStore.Len(), "nothing should be persisted")
			})
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/tasks", `{"title": "x"}`, uuid.Nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	t.Run("returns only the caller's tasks", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		env.seedTask(t, "mine 1", env.userID)
		env.seedTask(t, "mine 2", env.userID)
		env.seedTask(t, "theirs", uuid.New())

		w := env.do(t, http.MethodGet, "/api/tasks", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp []api.TaskResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp, 2)
		for _, task := range resp {
			assert.Equal(t, env.userID.String(), task.UserID)
		}
	})

	t.Run("empty list is an empty array, not null", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodGet, "/api/tasks", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", string(bytes.TrimSpace(w.Body.Bytes())))
	})
}

func TestGetTask(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "mine", env.userID)

		w := env.do(t, http.MethodGet, "/api/tasks/"+task.ID.String(), "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, task.ID.String(), decodeTask(t, w).ID)
	})

	t.Run("nonexistent id", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodGet, "/api/tasks/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("someone else's task", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "theirs", uuid.New())

		w := env.do(t, http.MethodGet, "/api/tasks/"+task.ID.String(), "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodGet, "/api/tasks/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	t.Run("partial update leaves other fields intact", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "Write report", env.userID)

		w := env.do(t, http.MethodPut, "/api/tasks/"+task.ID.String(),
			`{"status": "Completed"}`)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeTask(t, w)
		assert.Equal(t, "Completed", resp.Status)
		assert.Equal(t, "Write report", resp.Title)
		assert.Equal(t, "Medium", resp.Priority)
	})

	t.Run("empty patch", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "x", env.userID)

		w := env.do(t, http.MethodPut, "/api/tasks/"+task.ID.String(), `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid enum value", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "x", env.userID)

		w := env.do(t, http.MethodPut, "/api/tasks/"+task.ID.String(),
			`{"priority": "ASAP"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("someone else's task is untouched", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		other := uuid.New()
		task := env.seedTask(t, "theirs", other)

		w := env.do(t, http.MethodPut, "/api/tasks/"+task.ID.String(),
			`{"status": "Completed"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)

		asOwner := env.do(t, http.MethodGet, "/api/tasks/"+task.ID.String(), "", other)
		require.Equal(t, http.StatusOK, asOwner.Code)
		assert.Equal(t, "Pending", decodeTask(t, asOwner).Status)
	})

	t.Run("nonexistent task", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodPut, "/api/tasks/"+uuid.NewString(),
			`{"status": "Completed"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "done with this", env.userID)

		w := env.do(t, http.MethodDelete, "/api/tasks/"+task.ID.String(), "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.DeleteTaskResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, task.ID.String(), resp.ID)
		assert.Equal(t, 0, env.taskStore.Len())
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "theirs", uuid.New())

		w := env.do(t, http.MethodDelete, "/api/tasks/"+task.ID.String(), "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, 1, env.taskStore.Len(), "task must survive the attempt")
	})

	t.Run("nonexistent task", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodDelete, "/api/tasks/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskStats(t *testing.T) {
	t.Parallel()

	env := newTaskTestEnv(t)

	seed := func(priority domain.TaskPriority, status domain.TaskStatus) {
		task, err := domain.NewTask(env.userID, "t", "", "", priority, status, nil)
		require.NoError(t, err)
		env.taskStore.Seed(task)
	}

	seed(domain.PriorityHigh, domain.StatusPending)
	seed(domain.PriorityHigh, domain.StatusCompleted)
	seed(domain.PriorityMedium, domain.StatusInProgress)
	seed(domain.PriorityLow, domain.StatusPending)

	// Another user's task must not leak into the counts.
	other, err := domain.NewTask(uuid.New(), "theirs", "", "", domain.PriorityHigh, domain.StatusPending, nil)
	require.NoError(t, err)
	env.taskStore.Seed(other)

	w := env.do(t, http.MethodGet, "/api/tasks/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	var stats domain.TaskStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))

	assert.Equal(t, 4, stats.TotalTasks)
	assert.Equal(t, 2, stats.PendingTasks)
	assert.Equal(t, 1, stats.InProgressTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 2, stats.HighPriority)
	assert.Equal(t, 1, stats.MediumPriority)
	assert.Equal(t, 1, stats.LowPriority)
}
