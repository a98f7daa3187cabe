package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskgrove/taskgrove-api/internal/api/shared"
	"github.com/taskgrove/taskgrove-api/internal/domain"
)

// identityFromRequest extracts the authenticated identity from the request
// context. The identity is placed there by the authentication middleware.
func identityFromRequest(r *http.Request) (shared.Identity, bool) {
	return shared.IdentityFromContext(r.Context())
}

// getPathUUID extracts and parses a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}
