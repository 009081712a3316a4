package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"jobpilot/backend/internal/platform/apperr"
	teldomain "jobpilot/backend/internal/telemetry/domain"
	userdomain "jobpilot/backend/internal/user/domain"
	"jobpilot/backend/internal/verifier"
)

const (
	MsgInvalidProof = "invalid or expired token"
	MsgUserNotFound = "user not found"
)

// MobileProofInput is a proof token from the identity provider and the mobile number it is claimed for.
type MobileProofInput struct {
	ProofToken string
	MobileNo   string
}

// VerificationResult is the user's verification state after a proof was applied.
type VerificationResult struct {
	UserID           string `json:"id"`
	Email            string `json:"email"`
	MobileNo         string `json:"mobile_no"`
	IsMobileVerified bool   `json:"is_mobile_verified"`
	IsEmailVerified  bool   `json:"is_email_verified"`
}

func newVerificationResult(u *userdomain.User) *VerificationResult {
	return &VerificationResult{
		UserID:           u.ID,
		Email:            u.Email,
		MobileNo:         u.MobileNo,
		IsMobileVerified: u.IsMobileVerified,
		IsEmailVerified:  u.IsEmailVerified,
	}
}

// ApplyMobileProof verifies the proof token and marks the account owning MobileNo as mobile-verified.
// Re-applying a valid proof is not an error.
func (s *AuthService) ApplyMobileProof(ctx context.Context, in MobileProofInput) (*VerificationResult, error) {
	token := strings.TrimSpace(in.ProofToken)
	mobile := userdomain.NormalizeMobile(in.MobileNo)
	if token == "" || mobile == "" {
		return nil, apperr.BadRequest("id_token and mobile_no are required")
	}

	vctx, cancel := context.WithTimeout(ctx, s.verifierTimeout)
	principal, err := s.proofs.Verify(vctx, token)
	cancel()
	if err != nil {
		if errors.Is(err, verifier.ErrInvalidProof) {
			s.metrics.Verification(ctx, "mobile", "invalid_proof")
			return nil, apperr.Unauthorized(MsgInvalidProof)
		}
		s.metrics.Verification(ctx, "mobile", "error")
		return nil, apperr.Internal(err)
	}

	mismatch := userdomain.NormalizeMobile(principal.PhoneNumber) != mobile
	if mismatch {
		s.logger.Warn("verified phone differs from submitted mobile number",
			zap.String("subject", principal.Subject))
	}

	u, err := s.users.SetMobileVerified(ctx, mobile)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		s.metrics.Verification(ctx, "mobile", "not_found")
		return nil, apperr.NotFound(MsgUserNotFound)
	}
	if mismatch {
		s.emit(teldomain.EventMobileMismatch, u.ID, map[string]string{"subject": principal.Subject})
	}
	s.metrics.Verification(ctx, "mobile", "verified")
	s.emit(teldomain.EventMobileVerified, u.ID, nil)
	return newVerificationResult(u), nil
}

// ApplyEmailProof marks the account owning email as email-verified. The proof itself is
// checked by the link issuer, not here.
func (s *AuthService) ApplyEmailProof(ctx context.Context, email string) (*VerificationResult, error) {
	email = userdomain.NormalizeEmail(email)
	if email == "" {
		return nil, apperr.BadRequest("email is required")
	}
	u, err := s.users.SetEmailVerified(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		s.metrics.Verification(ctx, "email", "not_found")
		return nil, apperr.NotFound(MsgUserNotFound)
	}
	s.metrics.Verification(ctx, "email", "verified")
	s.emit(teldomain.EventEmailVerified, u.ID, nil)
	return newVerificationResult(u), nil
}
