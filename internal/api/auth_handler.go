// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskgrove/taskgrove-api/internal/api/shared"
	"github.com/taskgrove/taskgrove-api/internal/config"
	"github.com/taskgrove/taskgrove-api/internal/domain"
	"github.com/taskgrove/taskgrove-api/internal/platform/logger"
	"github.com/taskgrove/taskgrove-api/internal/redact"
	"github.com/taskgrove/taskgrove-api/internal/service/auth"
	"github.com/taskgrove/taskgrove-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	authConfig       *config.AuthConfig
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
	authConfig *config.AuthConfig,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}

	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		authConfig:       authConfig,
		validator:        validator.New(),
		logger:           log.With(slog.String("component", "auth_handler")),
	}
}

// tokenExpiry formats the expiry timestamp advertised alongside a fresh token.
func (h *AuthHandler) tokenExpiry() string {
	lifetime := time.Duration(h.authConfig.TokenLifetimeMinutes) * time.Minute
	return time.Now().UTC().Add(lifetime).Format(time.RFC3339)
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	user, err := domain.NewUser(req.Username, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid user data", err)
		return
	}

	// Hash before the store ever sees the user; the plaintext never leaves
	// this handler.
	hashed, err := h.passwordHasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Username already exists")
			return
		}
		log.Error("failed to create user", "error", redact.Error(err), "username", req.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Username)
	if err != nil {
		log.Error("failed to generate token", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: h.tokenExpiry(),
	})
}

// Login handles the /auth/login endpoint. Unknown usernames and wrong
// passwords produce the same response so callers cannot probe which part
// failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("failed to get user by username", "error", redact.Error(err), "username", req.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Username)
	if err != nil {
		log.Error("failed to generate token", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	log.Info("user logged in", "user_id", user.ID)
	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: h.tokenExpiry(),
	})
}

// Me handles the /auth/me endpoint. It returns the profile of the
// authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := identityFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// A valid token for a user that no longer exists.
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		log.Error("failed to get user by id", "error", redact.Error(err), "user_id", identity.UserID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to load user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}
