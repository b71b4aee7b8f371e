package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/live"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	IDs     []uuid.UUID `json:"ids,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeStoreError maps the store's error taxonomy onto HTTP statuses.
// Concurrency rejections are 409s with machine-readable codes so clients
// can refetch and retry instead of parsing messages.
func writeStoreError(w http.ResponseWriter, err error) {
	var (
		notFound    *live.NotFoundError
		conflict    *live.VersionConflictError
		duplicate   *live.DuplicateItemError
		transition  *live.InvalidTransitionError
		unavailable *live.CourtUnavailableError
	)

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code:    "not_found",
			Message: notFound.Error(),
			IDs:     []uuid.UUID{notFound.ID},
		})
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, errorResponse{
			Code:    "version_conflict",
			Message: conflict.Error(),
			IDs:     conflict.IDs,
		})
	case errors.As(err, &duplicate):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "duplicate_item",
			Message: duplicate.Error(),
			IDs:     []uuid.UUID{duplicate.ID},
		})
	case errors.As(err, &transition):
		writeJSON(w, http.StatusConflict, errorResponse{
			Code:    "invalid_transition",
			Message: transition.Error(),
		})
	case errors.As(err, &unavailable):
		writeJSON(w, http.StatusConflict, errorResponse{
			Code:    "court_unavailable",
			Message: unavailable.Error(),
			IDs:     []uuid.UUID{unavailable.CourtID},
		})
	case errors.Is(err, live.ErrCourtRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "court_required",
			Message: err.Error(),
		})
	default:
		log.Error().Err(err).Msg("mutation failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    "internal",
			Message: "internal server error",
		})
	}
}

// pathUUID parses a path parameter as a UUID, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "bad_request",
			Message: "invalid " + name,
		})
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "bad_request",
			Message: "invalid request body",
		})
		return false
	}
	return true
}
