package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskgrove/taskgrove-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			username: "alice",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "empty username",
			username: "",
			password: "password123",
			wantErr:  domain.ErrEmptyUsername,
		},
		{
			name:     "username too short",
			username: "al",
			password: "password123",
			wantErr:  domain.ErrUsernameTooShort,
		},
		{
			name:     "username too long",
			username: strings.Repeat("a", 51),
			password: "password123",
			wantErr:  domain.ErrUsernameTooLong,
		},
		{
			name:     "password too short",
			username: "alice",
			password: "short",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			username: "alice",
			password: strings.Repeat("p", 73),
			wantErr:  domain.ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := domain.NewUser(tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tt.username, user.Username)
			assert.False(t, user.CreatedAt.IsZero())
			assert.False(t, user.UpdatedAt.IsZero())
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// Users loaded from storage have no plaintext password, only a hash.
	user := &domain.User{
		ID:             uuid.New(),
		Username:       "alice",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	// Missing both plaintext and hashed password is invalid.
	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}
