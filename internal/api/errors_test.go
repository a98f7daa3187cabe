package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskgrove/taskgrove-api/internal/api"
	"github.com/taskgrove/taskgrove-api/internal/domain"
	"github.com/taskgrove/taskgrove-api/internal/service"
	"github.com/taskgrove/taskgrove-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "task not owned", err: service.ErrTaskNotOwned, want: http.StatusForbidden},
		{name: "task not found", err: store.ErrTaskNotFound, want: http.StatusNotFound},
		{name: "user not found", err: store.ErrUserNotFound, want: http.StatusNotFound},
		{name: "username exists", err: store.ErrUsernameExists, want: http.StatusConflict},
		{name: "empty patch", err: service.ErrEmptyPatch, want: http.StatusBadRequest},
		{name: "blank title", err: domain.ErrTaskTitleEmpty, want: http.StatusBadRequest},
		{name: "bad priority", err: domain.ErrInvalidPriority, want: http.StatusBadRequest},
		{name: "bad status", err: domain.ErrInvalidStatus, want: http.StatusBadRequest},
		{name: "unknown", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
		{
			name: "wrapped sentinel",
			err:  fmt.Errorf("failed to get task: %w", store.ErrTaskNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "validation error wrapper",
			err:  domain.NewValidationError("priority", "must be one of High, Medium, Low", domain.ErrInvalidPriority),
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("known errors get friendly messages", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Task not found", api.GetSafeErrorMessage(store.ErrTaskNotFound))
		assert.Equal(t, "You do not own this task", api.GetSafeErrorMessage(service.ErrTaskNotOwned))
		assert.Equal(t, "Username already exists", api.GetSafeErrorMessage(store.ErrUsernameExists))
	})

	t.Run("internal details never leak", func(t *testing.T) {
		t.Parallel()
		internal := errors.New("pq: connection to 10.0.0.5:5432 refused")
		msg := api.GetSafeErrorMessage(internal)
		assert.Equal(t, "An unexpected error occurred", msg)
		assert.NotContains(t, msg, "10.0.0.5")
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(nil))
	})
}
