package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobpilot/backend/internal/db"
	"jobpilot/backend/internal/db/sqlc/gen"
	"jobpilot/backend/internal/user/domain"

	"github.com/google/uuid"
)

const (
	constraintEmail  = "users_email_key"
	constraintMobile = "users_mobile_no_key"
)

type PostgresRepository struct {
	queries *gen.Queries
	timeout time.Duration
}

// NewPostgresRepository returns a user repository backed by conn. Every call is bounded by timeout.
func NewPostgresRepository(conn *sql.DB, timeout time.Duration) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(conn), timeout: timeout}
}

// GetByID returns the user for id, or nil if not found or id is not a UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	return oneUser(r.queries.GetUser(ctx, uid))
}

// GetByEmail returns the user with the given (already normalized) email, or nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	return oneUser(r.queries.GetUserByEmail(ctx, email))
}

// GetByMobile returns the user owning mobileNo, or nil if not found.
func (r *PostgresRepository) GetByMobile(ctx context.Context, mobileNo string) (*domain.User, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	return oneUser(r.queries.GetUserByMobile(ctx, mobileNo))
}

// Create inserts u. ID, flags and timestamps are assigned by the store and copied back into u.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	row, err := r.queries.CreateUser(ctx, gen.CreateUserParams{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Gender:       string(u.Gender),
		MobileNo:     u.MobileNo,
		SignupType:   string(u.SignupType),
	})
	if err != nil {
		return translate(err)
	}
	*u = *genUserToDomain(&row)
	return nil
}

// ReplacePending applies a retry registration in one guarded UPDATE.
func (r *PostgresRepository) ReplacePending(ctx context.Context, u *domain.User) (*domain.User, error) {
	uid, err := uuid.Parse(u.ID)
	if err != nil {
		return nil, nil
	}
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	row, err := r.queries.UpdatePendingRegistration(ctx, gen.UpdatePendingRegistrationParams{
		ID:           uid,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Gender:       string(u.Gender),
		MobileNo:     u.MobileNo,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return genUserToDomain(&row), nil
}

// SetMobileVerified is idempotent; it returns nil when no row owns mobileNo.
func (r *PostgresRepository) SetMobileVerified(ctx context.Context, mobileNo string) (*domain.User, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	return oneUser(r.queries.SetMobileVerified(ctx, mobileNo))
}

// SetEmailVerified is idempotent; it returns nil when no row owns email.
func (r *PostgresRepository) SetEmailVerified(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	return oneUser(r.queries.SetEmailVerified(ctx, email))
}

func oneUser(u gen.User, err error) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genUserToDomain(&u), nil
}

// translate maps unique violations to the package sentinels.
func translate(err error) error {
	constraint, ok := db.UniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case constraintEmail:
		return ErrEmailTaken
	case constraintMobile:
		return ErrMobileTaken
	}
	return err
}

func genUserToDomain(u *gen.User) *domain.User {
	return &domain.User{
		ID:               u.ID.String(),
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		FullName:         u.FullName,
		Gender:           domain.Gender(u.Gender),
		MobileNo:         u.MobileNo,
		IsMobileVerified: u.IsMobileVerified,
		IsEmailVerified:  u.IsEmailVerified,
		SignupType:       domain.SignupType(u.SignupType),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
