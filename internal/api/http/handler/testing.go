package handler

import (
	"net/http"

	"github.com/dtroode/account-server/internal/api/http/response"
	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

// Testing serves endpoints that only exist while the service runs against a testing database.
type Testing struct {
	accounts AccountService
	enabled  bool
	logger   *logger.Logger
}

func NewTesting(accounts AccountService, enabled bool, logger *logger.Logger) *Testing {
	return &Testing{accounts: accounts, enabled: enabled, logger: logger}
}

// Guard rejects every request with NotTesting unless testing mode is enabled.
func (h *Testing) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.enabled {
			response.Error(w, r, h.logger, model.NewError(model.KindNotTesting, "Backend not using testing database."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Testing) Status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("enabled"))
}

// Reset wipes all accounts and recreates the default testing user.
func (h *Testing) Reset(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("Testing handler: resetting accounts")

	if err := h.accounts.ResetForTesting(r.Context()); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
