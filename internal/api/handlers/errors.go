package handlers

import (
	"errors"
	"net/http"

	"github.com/dom/moodbite/internal/api/response"
	"github.com/dom/moodbite/internal/domain"
	"go.uber.org/zap"
)

// writeError maps service errors onto status codes. Unrecognized errors are
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		response.Error(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, domain.ErrValidation):
		response.Error(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, domain.ErrDuplicateEmail):
		response.Error(w, http.StatusBadRequest, "User already exists with this email")
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Error(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, domain.ErrMissingToken):
		response.Error(w, http.StatusUnauthorized, "Access token required")
	case errors.Is(err, domain.ErrInvalidToken):
		response.Error(w, http.StatusForbidden, "Invalid or expired token")
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Not found")
	default:
		log.Error("request failed", zap.String("op", op), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Server error")
	}
}

func decodeError(w http.ResponseWriter) {
	response.Error(w, http.StatusBadRequest, "Invalid request body")
}
