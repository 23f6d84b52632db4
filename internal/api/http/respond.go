package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Date  string `json:"date,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("response encoding failed", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Every
// rejection carries the specific conflicting date or failed precondition;
// only unexpected failures collapse to a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.DateConflictError
		authErr       *domain.AuthorizationError
		precondErr    *domain.PreconditionError
		transitionErr *domain.InvalidTransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Code: "VALIDATION"})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: conflictErr.Error(),
			Code:  "DATE_CONFLICT",
			Date:  conflictErr.Date.Format(domain.DayFormat),
		})
	case errors.As(err, &transitionErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: transitionErr.Error(), Code: "INVALID_TRANSITION"})
	case errors.As(err, &authErr):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: authErr.Error(), Code: "NOT_AUTHORIZED"})
	case errors.As(err, &precondErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: precondErr.Error(), Code: string(precondErr.Code)})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Code: "NOT_FOUND"})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "INVALID_CREDENTIALS"})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domain.ValidationError{Field: "body", Reason: "malformed JSON"}
	}
	return nil
}
