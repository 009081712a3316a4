package engine

import (
	"context"

	userdomain "jobpilot/backend/internal/user/domain"
)

// Decision is the outcome of login admission.
type Decision struct {
	Allow bool
	// Reason explains a denial; empty when allowed.
	Reason string
}

// AdmissionEvaluator decides whether a user may be issued a session, based on verification state only.
// Credentials are checked by the caller after an allow.
type AdmissionEvaluator interface {
	EvaluateLogin(ctx context.Context, user *userdomain.User) (Decision, error)
}
