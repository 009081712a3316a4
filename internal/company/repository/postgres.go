package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobpilot/backend/internal/company/domain"
	"jobpilot/backend/internal/db"
	"jobpilot/backend/internal/db/sqlc/gen"

	"github.com/google/uuid"
)

const constraintOwner = "company_profiles_owner_id_key"

type PostgresRepository struct {
	queries *gen.Queries
	timeout time.Duration
}

// NewPostgresRepository returns a company profile repository backed by conn. Every call is bounded by timeout.
func NewPostgresRepository(conn *sql.DB, timeout time.Duration) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(conn), timeout: timeout}
}

// GetByOwner returns the owner's profile, or nil if none exists.
func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	oid, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, nil
	}
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	row, err := r.queries.GetCompanyProfileByOwner(ctx, oid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genProfileToDomain(&row)
}

// Create inserts p. Empty text fields are stored as NULL.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	oid, err := uuid.Parse(p.OwnerID)
	if err != nil {
		return nil, ErrOwnerNotFound
	}
	links, err := encodeLinks(p.SocialLinks)
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = []byte("{}")
	}
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	row, err := r.queries.CreateCompanyProfile(ctx, gen.CreateCompanyProfileParams{
		OwnerID:     oid,
		CompanyName: p.CompanyName,
		Address:     nullString(p.Address),
		City:        nullString(p.City),
		State:       nullString(p.State),
		Country:     nullString(p.Country),
		PostalCode:  nullString(p.PostalCode),
		Website:     nullString(p.Website),
		Industry:    nullString(p.Industry),
		Description: nullString(p.Description),
		FoundedDate: nullDate(p.FoundedDate),
		SocialLinks: links,
	})
	if err != nil {
		if c, ok := db.UniqueViolation(err); ok && c == constraintOwner {
			return nil, ErrProfileExists
		}
		if db.ForeignKeyViolation(err) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	return genProfileToDomain(&row)
}

// Merge applies patch in one UPDATE: empty text and a nil date keep the stored value,
// social links are merged per key.
func (r *PostgresRepository) Merge(ctx context.Context, ownerID string, patch domain.Patch) (*domain.Profile, error) {
	oid, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, nil
	}
	links, err := encodeLinks(patch.SocialLinks)
	if err != nil {
		return nil, err
	}
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	row, err := r.queries.MergeCompanyProfile(ctx, gen.MergeCompanyProfileParams{
		CompanyName: nullString(patch.CompanyName),
		Address:     nullString(patch.Address),
		City:        nullString(patch.City),
		State:       nullString(patch.State),
		Country:     nullString(patch.Country),
		PostalCode:  nullString(patch.PostalCode),
		Website:     nullString(patch.Website),
		Industry:    nullString(patch.Industry),
		Description: nullString(patch.Description),
		FoundedDate: nullDate(patch.Founded),
		SocialLinks: links,
		OwnerID:     oid,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genProfileToDomain(&row)
}

// SetImageURL updates logo_url or banner_url only.
func (r *PostgresRepository) SetImageURL(ctx context.Context, ownerID string, field domain.ImageField, url string) (bool, error) {
	oid, err := uuid.Parse(ownerID)
	if err != nil {
		return false, nil
	}
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	switch field {
	case domain.ImageLogo:
		_, err = r.queries.SetCompanyLogoURL(ctx, gen.SetCompanyLogoURLParams{OwnerID: oid, LogoUrl: nullString(url)})
	case domain.ImageBanner:
		_, err = r.queries.SetCompanyBannerURL(ctx, gen.SetCompanyBannerURLParams{OwnerID: oid, BannerUrl: nullString(url)})
	default:
		return false, domain.ErrInvalidImageField
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// encodeLinks returns nil for no links so the merge leaves the stored map alone.
func encodeLinks(links domain.SocialLinks) ([]byte, error) {
	if len(links) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("encode social links: %w", err)
	}
	return b, nil
}

func genProfileToDomain(p *gen.CompanyProfile) (*domain.Profile, error) {
	links := domain.SocialLinks{}
	if len(p.SocialLinks) > 0 {
		if err := json.Unmarshal(p.SocialLinks, &links); err != nil {
			return nil, fmt.Errorf("decode social links: %w", err)
		}
	}
	out := &domain.Profile{
		ID:          p.ID.String(),
		OwnerID:     p.OwnerID.String(),
		CompanyName: p.CompanyName,
		Address:     p.Address.String,
		City:        p.City.String,
		State:       p.State.String,
		Country:     p.Country.String,
		PostalCode:  p.PostalCode.String,
		Website:     p.Website.String,
		Industry:    p.Industry.String,
		Description: p.Description.String,
		SocialLinks: links,
		LogoURL:     p.LogoUrl.String,
		BannerURL:   p.BannerUrl.String,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.FoundedDate.Valid {
		d := p.FoundedDate.Time
		out.FoundedDate = &d
	}
	return out, nil
}
