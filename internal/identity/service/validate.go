package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"jobpilot/backend/internal/platform/apperr"
	userdomain "jobpilot/backend/internal/user/domain"
)

// fieldCheck runs the same validator tags the HTTP boundary applies.
var fieldCheck = validator.New(validator.WithRequiredStructEnabled())

// PasswordSpecials are the characters of which a password must contain at least one.
const PasswordSpecials = "!@#$%^&*"

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// MaxPasswordLength is the longest password bcrypt accepts, in bytes.
const MaxPasswordLength = 72

// ValidEmail reports whether email looks like a mailbox address.
func ValidEmail(email string) bool {
	return fieldCheck.Var(email, "required,email") == nil
}

// ValidPassword reports whether password is MinPasswordLength to MaxPasswordLength bytes
// and contains a digit and one of PasswordSpecials.
func ValidPassword(password string) bool {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return false
	}
	return strings.ContainsAny(password, "0123456789") && strings.ContainsAny(password, PasswordSpecials)
}

func validateRegistration(email, password, name string, gender userdomain.Gender, mobile string) error {
	switch {
	case !ValidEmail(email):
		return apperr.BadRequest("invalid email")
	case !ValidPassword(password):
		return apperr.BadRequest("password must be 8 to 72 characters and contain a number and a special character")
	case name == "":
		return apperr.BadRequest("full name is required")
	case !gender.Valid():
		return apperr.BadRequest("gender must be one of m, f, o")
	case !userdomain.ValidMobile(mobile):
		return apperr.BadRequest("mobile number must be in E.164 format")
	}
	return nil
}
