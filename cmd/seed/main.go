// seed inserts development sample data for local testing: go run ./cmd/seed
// Idempotent: skips inserts if the dev user (dev@example.com) already exists.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"jobpilot/backend/internal/config"
	"jobpilot/backend/internal/db"
	"jobpilot/backend/internal/db/sqlc/gen"
	"jobpilot/backend/internal/logging"
	"jobpilot/backend/internal/security"
	userdomain "jobpilot/backend/internal/user/domain"
)

const (
	devUserEmail = "dev@example.com"
	devPassword  = "password123!"
	devMobile    = "+15550000001"
	devCompany   = "Acme Dev Hiring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		logger.Fatal("refusing to seed with APP_ENV=production")
	}
	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(context.Background(), cfg.DatabaseURL, 2)
	if err != nil {
		logger.Fatal("db", zap.Error(err))
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queries := gen.New(conn)
	_, err = queries.GetUserByEmail(ctx, devUserEmail)
	if err == nil {
		logger.Info("seed already applied, skipping", zap.String("email", devUserEmail))
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.Fatal("seed check", zap.Error(err))
	}

	passwordHash, err := security.NewHasher(cfg.BcryptCost).Hash(devPassword)
	if err != nil {
		logger.Fatal("hash password", zap.Error(err))
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Fatal("begin", zap.Error(err))
	}
	defer func() { _ = tx.Rollback() }()
	q := queries.WithTx(tx)

	u, err := q.CreateUser(ctx, gen.CreateUserParams{
		Email:        devUserEmail,
		PasswordHash: passwordHash,
		FullName:     "Dev Employer",
		Gender:       string(userdomain.GenderOther),
		MobileNo:     devMobile,
		SignupType:   string(userdomain.SignupTypeEmail),
	})
	if err != nil {
		logger.Fatal("create dev user", zap.Error(err))
	}
	if _, err := q.SetMobileVerified(ctx, devMobile); err != nil {
		logger.Fatal("verify dev mobile", zap.Error(err))
	}
	if _, err := q.SetEmailVerified(ctx, devUserEmail); err != nil {
		logger.Fatal("verify dev email", zap.Error(err))
	}

	founded := time.Date(2018, time.June, 1, 0, 0, 0, 0, time.UTC)
	if _, err := q.CreateCompanyProfile(ctx, gen.CreateCompanyProfileParams{
		OwnerID:     u.ID,
		CompanyName: devCompany,
		City:        sql.NullString{String: "Bengaluru", Valid: true},
		Country:     sql.NullString{String: "India", Valid: true},
		Website:     sql.NullString{String: "https://acme.example.com", Valid: true},
		Industry:    sql.NullString{String: "Staffing", Valid: true},
		FoundedDate: sql.NullTime{Time: founded, Valid: true},
		SocialLinks: []byte(`{"linkedin":"https://www.linkedin.com/company/acme-dev"}`),
	}); err != nil {
		logger.Fatal("create company profile", zap.Error(err))
	}

	if err := tx.Commit(); err != nil {
		logger.Fatal("commit", zap.Error(err))
	}
	logger.Info("seed applied",
		zap.String("email", devUserEmail),
		zap.String("user_id", u.ID.String()),
	)
}
