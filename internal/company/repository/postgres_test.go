package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"jobpilot/backend/internal/company/domain"
	"jobpilot/backend/internal/db"
	"jobpilot/backend/internal/db/migrate"
	"jobpilot/backend/internal/db/sqlc/gen"
	userdomain "jobpilot/backend/internal/user/domain"
	userrepo "jobpilot/backend/internal/user/repository"

	"github.com/google/uuid"
)

func TestEncodeLinks(t *testing.T) {
	b, err := encodeLinks(nil)
	if err != nil || b != nil {
		t.Fatalf("encodeLinks(nil) = %s, %v; want nil so the merge keeps stored links", b, err)
	}
	b, err = encodeLinks(domain.SocialLinks{"twitter": "https://x.com/acme"})
	if err != nil || string(b) != `{"twitter":"https://x.com/acme"}` {
		t.Errorf("encodeLinks = %s, %v", b, err)
	}
}

func TestGenProfileToDomain(t *testing.T) {
	founded := time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)
	p, err := genProfileToDomain(&gen.CompanyProfile{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		CompanyName: "Acme",
		City:        sql.NullString{String: "Pune", Valid: true},
		FoundedDate: sql.NullTime{Time: founded, Valid: true},
		SocialLinks: []byte(`{"facebook":"https://fb.com/acme"}`),
	})
	if err != nil {
		t.Fatalf("genProfileToDomain: %v", err)
	}
	if p.City != "Pune" || p.Address != "" || p.FoundedDate == nil || !p.FoundedDate.Equal(founded) {
		t.Errorf("unexpected mapping: %+v", p)
	}
	if p.SocialLinks["facebook"] != "https://fb.com/acme" {
		t.Errorf("SocialLinks = %v", p.SocialLinks)
	}
	if _, err := genProfileToDomain(&gen.CompanyProfile{SocialLinks: []byte(`not json`)}); err == nil {
		t.Error("malformed social_links should fail to decode")
	}
}

func TestNullString(t *testing.T) {
	if nullString("").Valid {
		t.Error("empty string should be NULL")
	}
	if ns := nullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("nullString(x) = %+v", ns)
	}
}

// TestPostgresRepository_MergeKeepsUnsuppliedFields runs against a real database when DATABASE_URL is set.
func TestPostgresRepository_MergeKeepsUnsuppliedFields(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}
	if err := migrate.Run(dsn, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	conn, err := db.Open(context.Background(), dsn, 2)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()
	ctx := context.Background()

	users := userrepo.NewPostgresRepository(conn, 5*time.Second)
	owner := &userdomain.User{
		Email:        "co-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: "h",
		FullName:     "Owner",
		Gender:       userdomain.GenderMale,
		MobileNo:     "+1666" + time.Now().Format("150405") + "1",
	}
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}

	repo := NewPostgresRepository(conn, 5*time.Second)
	founded := time.Date(2012, 5, 6, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, &domain.Profile{
		OwnerID:     owner.ID,
		CompanyName: "Acme",
		Website:     "https://acme.test",
		FoundedDate: &founded,
		SocialLinks: domain.SocialLinks{"twitter": "https://x.com/acme"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.Profile{OwnerID: owner.ID, CompanyName: "Again"}); !errors.Is(err, ErrProfileExists) {
		t.Errorf("second Create err = %v, want ErrProfileExists", err)
	}
	if _, err := repo.Create(ctx, &domain.Profile{OwnerID: uuid.NewString(), CompanyName: "Ghost"}); !errors.Is(err, ErrOwnerNotFound) {
		t.Errorf("Create for unknown owner err = %v, want ErrOwnerNotFound", err)
	}

	merged, err := repo.Merge(ctx, owner.ID, domain.Patch{Details: domain.Details{City: "Pune", SocialLinks: domain.SocialLinks{"youtube": "https://yt/acme"}}})
	if err != nil || merged == nil {
		t.Fatalf("Merge = %+v, %v", merged, err)
	}
	if merged.Website != created.Website || merged.CompanyName != "Acme" || merged.City != "Pune" {
		t.Errorf("text merge wrong: %+v", merged)
	}
	if merged.FoundedDate == nil || merged.FoundedDate.Format(time.DateOnly) != "2012-05-06" {
		t.Errorf("FoundedDate = %v", merged.FoundedDate)
	}
	if merged.SocialLinks["twitter"] == "" || merged.SocialLinks["youtube"] == "" {
		t.Errorf("SocialLinks = %v", merged.SocialLinks)
	}

	ok, err := repo.SetImageURL(ctx, owner.ID, domain.ImageLogo, "https://cdn/logo.png")
	if err != nil || !ok {
		t.Fatalf("SetImageURL = %v, %v", ok, err)
	}
	got, _ := repo.GetByOwner(ctx, owner.ID)
	if got.LogoURL != "https://cdn/logo.png" || got.BannerURL != "" {
		t.Errorf("image fields = %q / %q", got.LogoURL, got.BannerURL)
	}
}
