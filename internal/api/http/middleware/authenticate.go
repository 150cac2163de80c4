package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dtroode/account-server/internal/api/http/response"
	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

// SessionService resolves bearer tokens to account profiles.
type SessionService interface {
	Authenticate(ctx context.Context, token string) (model.Profile, error)
}

// Authenticate validates bearer tokens and injects the account profile into the request context.
type Authenticate struct {
	sessions       SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(sessions SessionService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			response.Error(w, r, m.logger, model.NewError(model.KindInvalidToken, "Missing authorization token."))
			return
		}

		profile, err := m.sessions.Authenticate(r.Context(), token)
		if err != nil {
			m.logger.Debug("Authenticate middleware: rejected token",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, r, m.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetProfileToContext(r.Context(), profile)))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
