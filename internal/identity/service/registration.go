package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"jobpilot/backend/internal/platform/apperr"
	teldomain "jobpilot/backend/internal/telemetry/domain"
	userdomain "jobpilot/backend/internal/user/domain"
	userrepo "jobpilot/backend/internal/user/repository"
)

// Conflict messages returned by Register.
const (
	MsgEmailVerified      = "email already verified"
	MsgEmailRegistered    = "email already registered"
	MsgMobileInUse        = "mobile in use"
	MsgMobilePending      = "mobile linked to pending registration"
	MsgMobileAlreadyInUse = "mobile number already in use"
)

// RegisterInput is the registration form. Values are normalized by Register.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Gender   string
	MobileNo string
}

// RegisterResult identifies the registered row. Retried is true when an unverified
// registration for the same email was overwritten instead of a row being created.
type RegisterResult struct {
	UserID  string
	Retried bool
}

// Register creates a pending (unverified) account, or overwrites the caller's own pending
// account when the email is already registered but its mobile was never verified.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	email := userdomain.NormalizeEmail(in.Email)
	mobile := userdomain.NormalizeMobile(in.MobileNo)
	name := strings.TrimSpace(in.FullName)
	gender := userdomain.Gender(strings.ToLower(strings.TrimSpace(in.Gender)))
	if err := validateRegistration(email, in.Password, name, gender, mobile); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		if existing.IsMobileVerified {
			s.metrics.Registration(ctx, "conflict")
			return nil, apperr.Conflict(MsgEmailVerified)
		}
		return s.retryRegistration(ctx, existing, in.Password, name, gender, mobile)
	}

	owner, err := s.users.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if owner != nil {
		s.metrics.Registration(ctx, "conflict")
		if owner.IsMobileVerified {
			return nil, apperr.Conflict(MsgMobileInUse)
		}
		return nil, apperr.Conflict(MsgMobilePending)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &userdomain.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     name,
		Gender:       gender,
		MobileNo:     mobile,
		SignupType:   userdomain.SignupTypeEmail,
	}
	if err := s.users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, userrepo.ErrMobileTaken):
			s.metrics.Registration(ctx, "conflict")
			return nil, apperr.Conflict(MsgMobileInUse)
		case errors.Is(err, userrepo.ErrEmailTaken):
			s.metrics.Registration(ctx, "conflict")
			return nil, apperr.Conflict(MsgEmailRegistered)
		}
		return nil, apperr.Internal(err)
	}
	s.logger.Info("registration created", zap.String("user_id", u.ID))
	s.metrics.Registration(ctx, "created")
	s.emit(teldomain.EventRegistrationCreated, u.ID, nil)
	return &RegisterResult{UserID: u.ID}, nil
}

// retryRegistration overwrites a still-unverified row in a single guarded write.
func (s *AuthService) retryRegistration(ctx context.Context, existing *userdomain.User, password, name string, gender userdomain.Gender, mobile string) (*RegisterResult, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	next := *existing
	next.FullName = name
	next.PasswordHash = hash
	next.Gender = gender
	next.MobileNo = mobile
	updated, err := s.users.ReplacePending(ctx, &next)
	if err != nil {
		if errors.Is(err, userrepo.ErrMobileTaken) {
			s.metrics.Registration(ctx, "conflict")
			return nil, apperr.Conflict(MsgMobileAlreadyInUse)
		}
		return nil, apperr.Internal(err)
	}
	if updated == nil {
		// Verified between the lookup and the write.
		s.metrics.Registration(ctx, "conflict")
		return nil, apperr.Conflict(MsgEmailVerified)
	}
	attrs := map[string]string{}
	if existing.MobileNo != updated.MobileNo {
		attrs["mobile_changed"] = "true"
	}
	s.logger.Info("registration retried", zap.String("user_id", updated.ID))
	s.metrics.Registration(ctx, "retried")
	s.emit(teldomain.EventRegistrationRetried, updated.ID, attrs)
	return &RegisterResult{UserID: updated.ID, Retried: true}, nil
}
