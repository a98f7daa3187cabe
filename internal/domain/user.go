package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooShort    = errors.New("username must be at least 3 characters long")
	ErrUsernameTooLong     = errors.New("username must be at most 50 characters long")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Username length bounds. The upper bound matches the column width in the
// users table; the lower bound keeps display names meaningful.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

// Password length bounds. The upper bound is bcrypt's practical input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User represents a registered account. The plaintext Password field is only
// populated transiently during registration and is never persisted or
// serialized; storage works exclusively with HashedPassword.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext, transient; hashed before storage
	HashedPassword string    `json:"-"` // Never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and plaintext password.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if len(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	if u.Password != "" {
		// A plaintext password is present during registration; validate its length.
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else {
		// Users loaded from storage carry only the hash.
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}
