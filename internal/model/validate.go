package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes a single failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type fieldRule struct {
	field string
	value any
	tag   string
}

// Validate checks the structural shape of the account fields.
// It returns nil when the record may be persisted.
func (a Account) Validate() []FieldError {
	var confirmed string
	if a.ConfirmedEmail != nil {
		confirmed = *a.ConfirmedEmail
	}
	var token string
	if a.EmailConfirmationToken != nil {
		token = *a.EmailConfirmationToken
	}

	rules := []fieldRule{
		{field: "pendingEmail", value: a.PendingEmail, tag: "required,email,max=254"},
		{field: "confirmedEmail", value: confirmed, tag: "omitempty,email,max=254"},
		{field: "displayName", value: a.DisplayName, tag: fmt.Sprintf("required,max=%d", MaxDisplayNameLength)},
		{field: "phone", value: a.Phone, tag: "required,e164"},
		{field: "emailConfirmationToken", value: token, tag: fmt.Sprintf("omitempty,min=%d,max=64", ConfirmationTokenLength)},
	}

	var errs []FieldError
	for _, r := range rules {
		if err := validate.Var(r.value, r.tag); err != nil {
			errs = append(errs, FieldError{Field: r.field, Message: describe(err)})
		}
	}

	if a.PasswordHash != nil && *a.PasswordHash == "" {
		errs = append(errs, FieldError{Field: "passwordHash", Message: "must not be empty"})
	}

	return errs
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a phone number in E.164 format"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
