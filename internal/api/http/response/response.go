// Package response renders JSON bodies and account errors for HTTP handlers.
package response

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

// KindInternal is reported for errors that are not safe to show to clients.
const KindInternal = "InternalError"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message"`
	Success bool               `json:"success"`
	Field   string             `json:"field,omitempty"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

// JSON renders v with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Error renders err. Account errors keep their kind and message; anything
// else is logged and reported as an internal error.
func Error(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	accErr, ok := model.AsAccountError(err)
	if !ok {
		log.LogError("HTTP: request failed", err,
			"method", r.Method,
			"path", r.URL.Path)
		JSON(w, r, http.StatusInternalServerError, ErrorResponse{
			Error:   KindInternal,
			Message: "Internal server error.",
		})
		return
	}

	JSON(w, r, StatusOf(accErr.Kind), ErrorResponse{
		Error:   string(accErr.Kind),
		Message: accErr.Message,
		Field:   accErr.Field,
		Fields:  accErr.Fields,
	})
}

// StatusOf maps an error kind to its HTTP status code.
func StatusOf(kind model.ErrorKind) int {
	switch kind {
	case model.KindBadEmail, model.KindBadPassword, model.KindBadDisplayName, model.KindBadPhone,
		model.KindValidation, model.KindInvalidInput, model.KindInvalidPhone,
		model.KindConfirmationExpired, model.KindWrongToken:
		return http.StatusBadRequest
	case model.KindAccountExists, model.KindAlreadyConfirmed:
		return http.StatusConflict
	case model.KindNotFound, model.KindNoUser:
		return http.StatusNotFound
	case model.KindCannotLogIn, model.KindInvalidPassword, model.KindInvalidToken,
		model.KindExpiredToken, model.KindSessionRevoked:
		return http.StatusUnauthorized
	case model.KindNotTesting:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
