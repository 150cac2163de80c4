package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/account-server/internal/api/http/response"
	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

// AccountService defines account lifecycle operations exposed over HTTP.
type AccountService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.Account, error)
	ConfirmEmail(ctx context.Context, email, token string, now time.Time) error
	ResetForTesting(ctx context.Context) error
}

// SessionService defines login.
type SessionService interface {
	Login(ctx context.Context, email, password string) (model.LoginResult, error)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
}

type confirmEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Account handles login, registration and profile endpoints.
type Account struct {
	accounts       AccountService
	sessions       SessionService
	contextManager model.ContextManager
	validate       *validator.Validate
	logger         *logger.Logger
}

func NewAccount(accounts AccountService, sessions SessionService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		accounts:       accounts,
		sessions:       sessions,
		contextManager: contextManager,
		validate:       validator.New(),
		logger:         logger,
	}
}

// Hello answers the root path.
func (h *Account) Hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Account service"))
}

// Login validates credentials and returns a session token with the account profile.
func (h *Account) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	result, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("Account handler: login failed",
			"email", req.Email,
			"error", err.Error())
		response.Error(w, r, h.logger, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// Register creates a pending account and returns its profile.
func (h *Account) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	account, err := h.accounts.Register(r.Context(), model.RegisterParams{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Phone:       req.Phone,
	})
	if err != nil {
		h.logger.Info("Account handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		response.Error(w, r, h.logger, err)
		return
	}

	response.JSON(w, r, http.StatusCreated, account.Profile())
}

// ConfirmEmail consumes a confirmation token.
func (h *Account) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var req confirmEmailRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Error(w, r, h.logger, model.NewValidationError(fieldErrors(err)))
		return
	}

	if err := h.accounts.ConfirmEmail(r.Context(), req.Email, req.Token, time.Time{}); err != nil {
		h.logger.Info("Account handler: email confirmation failed",
			"email", req.Email,
			"error", err.Error())
		response.Error(w, r, h.logger, err)
		return
	}

	response.JSON(w, r, http.StatusOK, successResponse{Success: true, Message: "Email confirmed."})
}

// UserInfo returns the profile of the authenticated account.
func (h *Account) UserInfo(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.contextManager.GetProfileFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.logger, model.NewError(model.KindInvalidToken, "Authentication required."))
		return
	}

	response.JSON(w, r, http.StatusOK, profile)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.NewError(model.KindInvalidInput, "Request body must be a JSON object.")
	}
	return nil
}

func fieldErrors(err error) []model.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []model.FieldError{{Message: err.Error()}}
	}

	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, model.FieldError{
			Field:   jsonName(fe.StructField()),
			Message: "failed " + fe.Tag() + " check",
		})
	}
	return fields
}

func jsonName(structField string) string {
	switch structField {
	case "Email":
		return "email"
	case "Token":
		return "token"
	default:
		return structField
	}
}
