// Package firebase verifies Firebase Authentication ID tokens against Google's published JWKS.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"jobpilot/backend/internal/verifier"
)

// DefaultJWKSURL serves the keys Firebase signs ID tokens with.
const DefaultJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

const issuerPrefix = "https://securetoken.google.com/"

// Config configures a Verifier. ProjectID is required.
type Config struct {
	ProjectID  string
	JWKSURL    string
	HTTPClient *http.Client
	// Skew tolerated on exp/iat/nbf.
	Skew time.Duration
}

// Verifier validates Firebase ID tokens. Keys are cached and refreshed in the background
// for the lifetime of the context passed to New.
type Verifier struct {
	cache    *jwk.Cache
	jwksURL  string
	issuer   string
	audience string
	skew     time.Duration
}

// New registers the JWKS URL with a refreshing cache. Keys are fetched lazily on first use.
func New(ctx context.Context, cfg Config) (*Verifier, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("firebase: project id is required")
	}
	url := cfg.JWKSURL
	if url == "" {
		url = DefaultJWKSURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	cache := jwk.NewCache(ctx)
	if err := cache.Register(url, jwk.WithHTTPClient(client), jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, fmt.Errorf("firebase: register jwks: %w", err)
	}
	skew := cfg.Skew
	if skew <= 0 {
		skew = 30 * time.Second
	}
	return &Verifier{
		cache:    cache,
		jwksURL:  url,
		issuer:   issuerPrefix + cfg.ProjectID,
		audience: cfg.ProjectID,
		skew:     skew,
	}, nil
}

// Verify checks signature, issuer, audience and validity window. A token that fails any check
// yields verifier.ErrInvalidProof; failing to obtain keys is returned as-is.
func (v *Verifier) Verify(ctx context.Context, proofToken string) (*verifier.Principal, error) {
	proofToken = strings.TrimSpace(proofToken)
	if proofToken == "" {
		return nil, verifier.ErrInvalidProof
	}
	keys, err := v.cache.Get(ctx, v.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("firebase: fetch jwks: %w", err)
	}
	tok, err := jwt.ParseString(proofToken,
		jwt.WithKeySet(keys),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithAcceptableSkew(v.skew),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verifier.ErrInvalidProof, err)
	}
	if tok.Subject() == "" {
		return nil, fmt.Errorf("%w: missing subject", verifier.ErrInvalidProof)
	}
	return &verifier.Principal{
		Subject:       tok.Subject(),
		PhoneNumber:   stringClaim(tok, "phone_number"),
		Email:         stringClaim(tok, "email"),
		EmailVerified: boolClaim(tok, "email_verified"),
	}, nil
}

func stringClaim(t jwt.Token, name string) string {
	v, ok := t.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func boolClaim(t jwt.Token, name string) bool {
	v, ok := t.Get(name)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

var _ verifier.Verifier = (*Verifier)(nil)
