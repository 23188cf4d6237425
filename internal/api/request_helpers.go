package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ruyichen/task-api/internal/api/middleware"
	"github.com/ruyichen/task-api/internal/api/shared"
	"github.com/ruyichen/task-api/internal/domain"
)

// respondError is the single funnel for handler error responses: mapped
// status, safe message, detailed error in the logs only.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// requireUser extracts the authenticated user placed in the context by the
// auth middleware, writing a 401 if it is absent. A missing user here means
// a route was wired without the middleware; the response is the same uniform
// unauthenticated one regardless.
func requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := middleware.GetUser(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return nil, false
	}
	return user, true
}

// requireToken extracts the raw bearer token the request authenticated with.
func requireToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := middleware.GetToken(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return "", false
	}
	return token, true
}

// pathUUID extracts and parses a UUID path parameter.
func pathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidID, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed %s", domain.ErrInvalidID, paramName)
	}

	return id, nil
}

// decodeAllowedFields decodes the request body as a flat JSON object and
// rejects any key outside the allow-list. Unknown keys are a hard error, not
// silently dropped: a client that sends one is confused about the contract,
// and an unrecognized owner or id field must never be quietly ignored.
func decodeAllowedFields(
	r *http.Request,
	allowed ...string,
) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON body", domain.ErrValidation)
	}

	for key := range fields {
		permitted := false
		for _, name := range allowed {
			if key == name {
				permitted = true
				break
			}
		}
		if !permitted {
			return nil, fmt.Errorf("%w: %q", domain.ErrDisallowedField, key)
		}
	}

	return fields, nil
}

// decodeField unmarshals one raw field into v, reporting a validation error
// with the field name on type mismatch.
func decodeField(raw json.RawMessage, name string, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return nil
}
