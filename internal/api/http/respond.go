package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ice-solution/bniwedding-application/internal/domain"
	"github.com/ice-solution/bniwedding-application/internal/logger"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses. Internal failures are
// logged but never leaked to the client.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation failed",
			Details: verr.Fields,
		})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	if errors.Is(err, domain.ErrUnauthorized) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
		return
	}

	var serr *domain.ExternalServiceError
	if errors.As(err, &serr) {
		logger.Error("external service failure", "service", serr.Service, "error", serr.Err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream service unavailable"})
		return
	}

	logger.Error("internal error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
