package repository

import (
	"context"
	"errors"

	"jobpilot/backend/internal/user/domain"
)

var (
	// ErrEmailTaken is returned when a write collides with users_email_key.
	ErrEmailTaken = errors.New("email already registered")
	// ErrMobileTaken is returned when a write collides with users_mobile_no_key.
	ErrMobileTaken = errors.New("mobile number already in use")
)

// Repository defines persistence for users. Lookups return (nil, nil) when no row matches.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByMobile(ctx context.Context, mobileNo string) (*domain.User, error)
	// Create inserts u with both verification flags false and fills in ID and timestamps.
	Create(ctx context.Context, u *domain.User) error
	// ReplacePending overwrites full name, password hash, gender and mobile of u.ID only while
	// the row is still mobile-unverified. It returns (nil, nil) when the guard matched no row.
	ReplacePending(ctx context.Context, u *domain.User) (*domain.User, error)
	// SetMobileVerified marks the row owning mobileNo as mobile-verified.
	SetMobileVerified(ctx context.Context, mobileNo string) (*domain.User, error)
	// SetEmailVerified marks the row owning email as email-verified.
	SetEmailVerified(ctx context.Context, email string) (*domain.User, error)
}
