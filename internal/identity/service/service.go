package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"jobpilot/backend/internal/logging"
	policyengine "jobpilot/backend/internal/policy/engine"
	"jobpilot/backend/internal/security"
	"jobpilot/backend/internal/telemetry"
	userdomain "jobpilot/backend/internal/user/domain"
	"jobpilot/backend/internal/verifier"
)

// UserRepo is the user persistence the auth service needs. Lookups return (nil, nil) when missing.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	GetByMobile(ctx context.Context, mobileNo string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	ReplacePending(ctx context.Context, u *userdomain.User) (*userdomain.User, error)
	SetMobileVerified(ctx context.Context, mobileNo string) (*userdomain.User, error)
	SetEmailVerified(ctx context.Context, email string) (*userdomain.User, error)
}

// Options carries the optional collaborators of AuthService.
type Options struct {
	// VerifierTimeout bounds each proof verification; 0 means 5s.
	VerifierTimeout time.Duration
	Logger          *zap.Logger
	Events          telemetry.EventEmitter
	Metrics         *telemetry.Metrics
}

// AuthService implements registration, verification and login admission for employer accounts.
// It holds no per-request state.
type AuthService struct {
	users           UserRepo
	hasher          *security.Hasher
	tokens          *security.TokenProvider
	proofs          verifier.Verifier
	admission       policyengine.AdmissionEvaluator
	verifierTimeout time.Duration
	logger          *zap.Logger
	events          telemetry.EventEmitter
	metrics         *telemetry.Metrics
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(
	users UserRepo,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	proofs verifier.Verifier,
	admission policyengine.AdmissionEvaluator,
	opts Options,
) *AuthService {
	if opts.VerifierTimeout <= 0 {
		opts.VerifierTimeout = 5 * time.Second
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NopMetrics()
	}
	return &AuthService{
		users:           users,
		hasher:          hasher,
		tokens:          tokens,
		proofs:          proofs,
		admission:       admission,
		verifierTimeout: opts.VerifierTimeout,
		logger:          logging.OrNop(opts.Logger),
		events:          opts.Events,
		metrics:         opts.Metrics,
	}
}

func (s *AuthService) emit(eventType, userID string, attrs map[string]string) {
	telemetry.EmitAsync(s.logger, s.events, telemetry.NewEvent(eventType, userID, attrs))
}
