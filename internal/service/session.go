package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

// Session issues session tokens for validated accounts and resolves
// presented tokens back to account profiles.
type Session struct {
	accounts *Account
	store    model.AccountStore
	manager  model.TokenManager
	logger   *logger.Logger
}

func NewSession(accounts *Account, store model.AccountStore, manager model.TokenManager, logger *logger.Logger) *Session {
	return &Session{accounts: accounts, store: store, manager: manager, logger: logger}
}

// Login validates the credentials and issues an access token.
func (s *Session) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	account, err := s.accounts.ValidateUser(ctx, email, password)
	if err != nil {
		return model.LoginResult{}, err
	}

	profile := account.Profile()
	token, err := s.manager.Issue(model.SessionClaims{
		PublicID: account.PublicID,
		Email:    profile.Email,
	})
	if err != nil {
		s.logger.Error("Session service: failed to issue token",
			"public_id", account.PublicID,
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Session service: session issued",
		"public_id", account.PublicID)

	return model.LoginResult{
		AccessToken: token,
		UserDetails: profile,
	}, nil
}

// Authenticate verifies token and returns the profile of its account.
// Tokens issued before the account's last security operation are rejected.
func (s *Session) Authenticate(ctx context.Context, token string) (model.Profile, error) {
	claims, err := s.manager.Parse(token)
	if err != nil {
		return model.Profile{}, err
	}

	account, err := s.store.GetByPublicID(ctx, claims.PublicID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, model.NewError(model.KindInvalidToken, "Session account no longer exists.")
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get account by public id: %w", err)
	}

	// iat has second precision.
	if claims.IssuedAt.Before(account.SecurityOperationPerformedAt.Truncate(time.Second)) {
		s.logger.Info("Session service: rejected revoked session",
			"public_id", account.PublicID,
			"issued_at", claims.IssuedAt)
		return model.Profile{}, model.NewError(model.KindSessionRevoked, "Session was revoked. Please log in again.")
	}

	return account.Profile(), nil
}
