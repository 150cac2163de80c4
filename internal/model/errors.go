package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when no row matches.
var ErrNotFound = errors.New("not found")

// ErrConflict is matched by ConflictError through errors.Is.
var ErrConflict = errors.New("unique constraint violation")

// ConflictError is returned by stores when a write violates a unique constraint.
type ConflictError struct {
	Field      string
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unique constraint violation on %s (%s)", e.Field, e.Constraint)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ErrorKind is a stable, machine-readable error category.
type ErrorKind string

const (
	KindBadEmail            ErrorKind = "BadEmail"
	KindBadPassword         ErrorKind = "BadPassword"
	KindBadDisplayName      ErrorKind = "BadDisplayName"
	KindBadPhone            ErrorKind = "BadPhone"
	KindAccountExists       ErrorKind = "AccountExists"
	KindValidation          ErrorKind = "ValidationError"
	KindNotFound            ErrorKind = "NotFound"
	KindNoUser              ErrorKind = "NoUser"
	KindAlreadyConfirmed    ErrorKind = "AlreadyConfirmed"
	KindConfirmationExpired ErrorKind = "ConfirmationExpired"
	KindWrongToken          ErrorKind = "WrongToken"
	KindCannotLogIn         ErrorKind = "CannotLogIn"
	KindInvalidPassword     ErrorKind = "InvalidPassword"
	KindInvalidToken        ErrorKind = "InvalidToken"
	KindExpiredToken        ErrorKind = "ExpiredToken"
	KindSessionRevoked      ErrorKind = "SessionRevoked"
	KindInvalidInput        ErrorKind = "InvalidInput"
	KindInvalidPhone        ErrorKind = "InvalidPhone"
	KindNotTesting          ErrorKind = "NotTesting"
)

// AccountError is a user-facing error. Its Kind and Message are safe to return to clients.
type AccountError struct {
	Kind    ErrorKind
	Message string
	// Field names the colliding field for KindAccountExists.
	Field string
	// Fields carries per-field detail for KindValidation.
	Fields []FieldError
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates an AccountError of the given kind.
func NewError(kind ErrorKind, format string, args ...any) *AccountError {
	return &AccountError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAccountExistsError reports a collision on field.
func NewAccountExistsError(field, value string) *AccountError {
	return &AccountError{
		Kind:    KindAccountExists,
		Message: fmt.Sprintf("an account with %s %s already exists", field, value),
		Field:   field,
	}
}

// NewValidationError wraps per-field validation failures.
func NewValidationError(fields []FieldError) *AccountError {
	return &AccountError{
		Kind:    KindValidation,
		Message: "account validation failed",
		Fields:  fields,
	}
}

// AsAccountError extracts an AccountError from the chain.
func AsAccountError(err error) (*AccountError, bool) {
	var accErr *AccountError
	if errors.As(err, &accErr) {
		return accErr, true
	}
	return nil, false
}

// KindOf returns the kind of the AccountError in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	if accErr, ok := AsAccountError(err); ok {
		return accErr.Kind
	}
	return ""
}
