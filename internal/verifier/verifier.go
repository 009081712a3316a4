// Package verifier defines the external identity proof check used by mobile verification.
package verifier

import (
	"context"
	"errors"
)

// ErrInvalidProof is returned when a proof token is malformed, expired or not signed by the provider.
var ErrInvalidProof = errors.New("invalid or expired proof")

// Principal is the identity asserted by a valid proof.
type Principal struct {
	Subject       string
	PhoneNumber   string
	Email         string
	EmailVerified bool
}

// Verifier checks a proof token issued out of band (e.g. after an SMS OTP) and returns its principal.
type Verifier interface {
	Verify(ctx context.Context, proofToken string) (*Principal, error)
}
