package repository

import (
	"context"
	"errors"

	"jobpilot/backend/internal/company/domain"
)

var (
	// ErrProfileExists is returned when the owner already has a profile (company_profiles_owner_id_key).
	ErrProfileExists = errors.New("company profile already exists")
	// ErrOwnerNotFound is returned when the owner row does not exist.
	ErrOwnerNotFound = errors.New("owner not found")
)

// Repository defines persistence for company profiles. Lookups and updates return
// (nil, nil) when the owner has no profile.
type Repository interface {
	GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	Merge(ctx context.Context, ownerID string, patch domain.Patch) (*domain.Profile, error)
	// SetImageURL writes a single image column. ok is false when the owner has no profile.
	SetImageURL(ctx context.Context, ownerID string, field domain.ImageField, url string) (ok bool, err error)
}
