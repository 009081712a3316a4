package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"jobpilot/backend/internal/platform/apperr"
	"jobpilot/backend/internal/security"
	teldomain "jobpilot/backend/internal/telemetry/domain"
	userdomain "jobpilot/backend/internal/user/domain"
)

const (
	MsgInvalidCredentials   = "invalid credentials"
	MsgVerificationRequired = "verification incomplete"
)

// LoginInput is the login form.
type LoginInput struct {
	Email    string
	Password string
}

// SessionUser is the user block returned with a session.
type SessionUser struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	MobileNo         string `json:"mobile_no"`
	IsMobileVerified bool   `json:"is_mobile_verified"`
	IsEmailVerified  bool   `json:"is_email_verified"`
}

// LoginResult is an issued session.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      SessionUser `json:"user"`
}

// Login admits a user whose verification state passes the admission policy and whose
// password matches. An unknown email and a wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := userdomain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		s.metrics.Login(ctx, "invalid_credentials")
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		s.metrics.Login(ctx, "invalid_credentials")
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}

	decision, err := s.admission.EvaluateLogin(ctx, u)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !decision.Allow {
		reason := decision.Reason
		if reason == "" {
			reason = MsgVerificationRequired
		}
		s.metrics.Login(ctx, "denied")
		return nil, apperr.Forbidden(reason)
	}

	if err := s.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		if !errors.Is(err, security.ErrPasswordMismatch) {
			s.logger.Error("stored password hash is unusable", zap.String("user_id", u.ID), zap.Error(err))
		}
		s.metrics.Login(ctx, "invalid_credentials")
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}

	token, expiresAt, err := s.tokens.IssueSession(u.ID, u.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	s.metrics.Login(ctx, "succeeded")
	s.emit(teldomain.EventLoginSucceeded, u.ID, nil)
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: SessionUser{
			ID:               u.ID,
			FullName:         u.FullName,
			Email:            u.Email,
			MobileNo:         u.MobileNo,
			IsMobileVerified: u.IsMobileVerified,
			IsEmailVerified:  u.IsEmailVerified,
		},
	}, nil
}
