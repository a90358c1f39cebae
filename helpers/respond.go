package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"tutoria-backend/config"
	"tutoria-backend/services"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// ServiceError maps service errors onto HTTP statuses. Validation and
// precondition failures surface their own message; anything unexpected is
// logged and reported generically.
func ServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrCannotRate),
		errors.Is(err, services.ErrCannotCancel):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrTutorNotFound),
		errors.Is(err, services.ErrSubjectNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		Message(w, http.StatusNotFound, err.Error())
	default:
		config.Logger.Error("internal error", zap.Error(err))
		Message(w, http.StatusInternalServerError, "Internal error")
	}
}
