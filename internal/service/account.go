package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

const confirmationTokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Default account created by ResetForTesting.
const (
	TestingEmail       = "testing@example.com"
	TestingDisplayName = "Test-Moo"
	TestingPassword    = "test123"
	TestingPhone       = "+1-202-456-1414"
)

// AccountOption configures an Account service.
type AccountOption func(*Account)

// WithClock replaces the service clock.
func WithClock(now func() time.Time) AccountOption {
	return func(a *Account) {
		a.now = now
	}
}

// WithTokenGenerator replaces the confirmation token generator.
func WithTokenGenerator(generate func() (string, error)) AccountOption {
	return func(a *Account) {
		a.generateToken = generate
	}
}

// Account implements the account lifecycle: registration, email confirmation
// and credential validation.
type Account struct {
	store         model.AccountStore
	hasher        model.PasswordHasher
	phones        model.PhoneNormalizer
	notifier      model.ConfirmationNotifier
	logger        *logger.Logger
	now           func() time.Time
	generateToken func() (string, error)
}

func NewAccount(
	store model.AccountStore,
	hasher model.PasswordHasher,
	phones model.PhoneNormalizer,
	notifier model.ConfirmationNotifier,
	logger *logger.Logger,
	opts ...AccountOption,
) *Account {
	a := &Account{
		store:         store,
		hasher:        hasher,
		phones:        phones,
		notifier:      notifier,
		logger:        logger,
		now:           time.Now,
		generateToken: generateConfirmationToken,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Register creates a pending account with a hashed password and a fresh confirmation token.
func (a *Account) Register(ctx context.Context, params model.RegisterParams) (model.Account, error) {
	a.logger.Debug("Account service: registering account",
		"email", params.Email,
		"display_name", params.DisplayName)

	switch {
	case params.Email == "":
		return model.Account{}, model.NewError(model.KindBadEmail, "Email is required.")
	case utf8.RuneCountInString(params.Password) < model.MinPasswordLength:
		return model.Account{}, model.NewError(model.KindBadPassword, "Password must be at least %d characters.", model.MinPasswordLength)
	case len(params.Password) > model.MaxPasswordBytes:
		return model.Account{}, model.NewError(model.KindBadPassword, "Password must be at most %d bytes.", model.MaxPasswordBytes)
	case params.DisplayName == "":
		return model.Account{}, model.NewError(model.KindBadDisplayName, "Display name is required.")
	case params.Phone == "":
		return model.Account{}, model.NewError(model.KindBadPhone, "Phone number is required.")
	}

	phone, err := a.phones.Normalize(params.Phone, "")
	if err != nil {
		a.logger.Info("Account service: rejected phone number",
			"phone", params.Phone,
			"error", err.Error())
		return model.Account{}, model.NewError(model.KindBadPhone, "Phone number %s is not valid.", params.Phone)
	}

	email := normalizeEmail(params.Email)

	if err := a.checkAvailable(ctx, email, params.DisplayName, phone); err != nil {
		return model.Account{}, err
	}

	token, err := a.generateToken()
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	now := a.now()
	account := model.Account{
		PublicID:                     uuid.New(),
		DisplayName:                  params.DisplayName,
		PendingEmail:                 email,
		Phone:                        phone,
		EmailConfirmationToken:       &token,
		EmailConfirmationRequestedAt: now,
		SecurityOperationPerformedAt: now,
	}

	if err := a.setPassword(ctx, &account, params.Password, now); err != nil {
		return model.Account{}, err
	}

	if fields := account.Validate(); len(fields) > 0 {
		a.logger.Info("Account service: account failed validation",
			"email", email,
			"fields", fields)
		return model.Account{}, model.NewValidationError(fields)
	}

	if err := a.store.Save(ctx, &account); err != nil {
		var conflict *model.ConflictError
		if errors.As(err, &conflict) {
			a.logger.Info("Account service: registration lost a uniqueness race",
				"email", email,
				"constraint", conflict.Constraint)
			return model.Account{}, model.NewAccountExistsError(conflict.Field, conflictValue(account, conflict.Field))
		}
		a.logger.Error("Account service: failed to save account",
			"email", email,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to save account: %w", err)
	}

	a.publishConfirmation(ctx, account)

	a.logger.Info("Account service: account registered",
		"email", email,
		"public_id", account.PublicID)

	return account, nil
}

// ConfirmEmail completes the pending confirmation of email when token matches.
// A zero now means the current time.
func (a *Account) ConfirmEmail(ctx context.Context, email, token string, now time.Time) error {
	if now.IsZero() {
		now = a.now()
	}
	email = normalizeEmail(email)

	a.logger.Debug("Account service: confirming email",
		"email", email)

	account, err := a.pendingAccount(ctx, email)
	if err != nil {
		return err
	}

	if account.ConfirmationExpired(now) {
		return model.NewError(model.KindConfirmationExpired,
			"Confirmation for %s expired. Please register again.", email)
	}

	stored := account.EmailConfirmationToken
	if stored == nil || subtle.ConstantTimeCompare([]byte(*stored), []byte(token)) != 1 {
		a.logger.Info("Account service: confirmation token mismatch",
			"email", email)
		return model.NewError(model.KindWrongToken, "Invalid confirmation.")
	}

	if err := a.completeConfirmation(ctx, &account, now); err != nil {
		return err
	}

	return nil
}

// ConfirmEmailForced confirms email without a token. The account must already have a password.
func (a *Account) ConfirmEmailForced(ctx context.Context, email string, now time.Time) (model.Account, error) {
	if now.IsZero() {
		now = a.now()
	}
	email = normalizeEmail(email)

	a.logger.Debug("Account service: force confirming email",
		"email", email)

	account, err := a.pendingAccount(ctx, email)
	if err != nil {
		return model.Account{}, err
	}

	if account.PasswordHash == nil {
		err := oops.
			Code("ACCOUNT_PASSWORD_MISSING").
			With("public_id", account.PublicID.String()).
			Errorf("account %s has no password", email)
		a.logger.LogError("Account service: refusing forced confirmation", err)
		return model.Account{}, err
	}

	if err := a.completeConfirmation(ctx, &account, now); err != nil {
		return model.Account{}, err
	}

	return account, nil
}

// ValidateUser returns the account identified by email when password matches.
func (a *Account) ValidateUser(ctx context.Context, email, password string) (model.Account, error) {
	if email == "" || password == "" {
		return model.Account{}, model.NewError(model.KindNoUser, "Email and password are required.")
	}
	email = normalizeEmail(email)

	account, err := a.store.GetByPendingEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, model.NewError(model.KindNoUser, "No user with email %s.", email)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	if !account.CanLogIn() {
		return model.Account{}, model.NewError(model.KindCannotLogIn,
			"Account %s cannot log in until the email is confirmed.", email)
	}

	ok, err := a.hasher.Verify(ctx, password, *account.PasswordHash)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		a.logger.Info("Account service: invalid password",
			"email", email)
		return model.Account{}, model.NewError(model.KindInvalidPassword, "Invalid password.")
	}

	return account, nil
}

// ResetForTesting removes every account and recreates the confirmed testing user.
func (a *Account) ResetForTesting(ctx context.Context) error {
	a.logger.Warn("Account service: resetting all accounts")

	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}

	_, err := a.Register(ctx, model.RegisterParams{
		Email:       TestingEmail,
		DisplayName: TestingDisplayName,
		Password:    TestingPassword,
		Phone:       TestingPhone,
	})
	if err != nil {
		return fmt.Errorf("failed to register testing account: %w", err)
	}

	if _, err := a.ConfirmEmailForced(ctx, TestingEmail, time.Time{}); err != nil {
		return fmt.Errorf("failed to confirm testing account: %w", err)
	}

	return nil
}

// pendingAccount loads the unconfirmed account for email.
func (a *Account) pendingAccount(ctx context.Context, email string) (model.Account, error) {
	_, err := a.store.GetByConfirmedEmail(ctx, email)
	if err == nil {
		return model.Account{}, model.NewError(model.KindAlreadyConfirmed, "Email %s is already confirmed.", email)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by confirmed email: %w", err)
	}

	account, err := a.store.GetByPendingEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, model.NewError(model.KindNotFound, "No account is waiting for confirmation of %s.", email)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account by pending email: %w", err)
	}

	return account, nil
}

func (a *Account) completeConfirmation(ctx context.Context, account *model.Account, now time.Time) error {
	account.Confirm(now)

	if fields := account.Validate(); len(fields) > 0 {
		return model.NewValidationError(fields)
	}

	if err := a.store.Save(ctx, account); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.NewError(model.KindAlreadyConfirmed, "Email %s is already confirmed.", account.PendingEmail)
		}
		return fmt.Errorf("failed to save confirmed account: %w", err)
	}

	if err := a.notifier.Discard(ctx, account.PublicID); err != nil {
		a.logger.Warn("Account service: failed to discard confirmation message",
			"public_id", account.PublicID,
			"error", err.Error())
	}

	a.logger.Info("Account service: email confirmed",
		"email", account.PendingEmail,
		"public_id", account.PublicID)

	return nil
}

func (a *Account) setPassword(ctx context.Context, account *model.Account, password string, now time.Time) error {
	digest, err := a.hasher.Hash(ctx, password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if digest == "" {
		err := oops.
			Code("ACCOUNT_PASSWORD_HASH_EMPTY").
			With("public_id", account.PublicID.String()).
			Errorf("password hasher returned an empty digest")
		a.logger.LogError("Account service: failed to set password", err)
		return err
	}

	account.ResetPassword(digest, now)
	return nil
}

func (a *Account) checkAvailable(ctx context.Context, email, displayName, phone string) error {
	lookups := []struct {
		field string
		value string
		get   func(context.Context, string) (model.Account, error)
	}{
		{field: "email", value: email, get: a.store.GetByPendingEmail},
		{field: "displayName", value: displayName, get: a.store.GetByDisplayName},
		{field: "phone", value: phone, get: a.store.GetByPhone},
	}

	for _, l := range lookups {
		_, err := l.get(ctx, l.value)
		if err == nil {
			a.logger.Info("Account service: account already exists",
				"field", l.field,
				"value", l.value)
			return model.NewAccountExistsError(l.field, l.value)
		}
		if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to check %s availability: %w", l.field, err)
		}
	}

	return nil
}

func (a *Account) publishConfirmation(ctx context.Context, account model.Account) {
	msg := model.ConfirmationMessage{
		PublicID:    account.PublicID,
		Email:       account.PendingEmail,
		DisplayName: account.DisplayName,
		Token:       *account.EmailConfirmationToken,
		RequestedAt: account.EmailConfirmationRequestedAt,
		ExpiresAt:   account.EmailConfirmationRequestedAt.Add(model.EmailConfirmationTimeout),
	}

	if err := a.notifier.Notify(ctx, msg); err != nil {
		a.logger.Error("Account service: failed to publish confirmation",
			"public_id", account.PublicID,
			"error", err.Error())
	}
}

func conflictValue(account model.Account, field string) string {
	switch field {
	case "email":
		return account.PendingEmail
	case "displayName":
		return account.DisplayName
	case "phone":
		return account.Phone
	default:
		return account.PublicID.String()
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateConfirmationToken() (string, error) {
	result := make([]byte, model.ConfirmationTokenLength)

	for i := range result {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(confirmationTokenCharset))))
		if err != nil {
			return "", err
		}
		result[i] = confirmationTokenCharset[num.Int64()]
	}

	return string(result), nil
}
