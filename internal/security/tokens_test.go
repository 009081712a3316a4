package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"testing"
	"time"
)

func TestTokenProvider_IssueAndValidateSession(t *testing.T) {
	p, err := NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	token, exp, err := p.IssueSession("user-1", "jane@example.com")
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if d := time.Until(exp); d < DefaultSessionTTL-time.Minute || d > DefaultSessionTTL+time.Minute {
		t.Errorf("expiry %v is not ~90 days out", d)
	}

	claims, err := p.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "jane@example.com" || claims.ID == "" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenProvider_ValidateSessionRejects(t *testing.T) {
	p, err := NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	good, _, _ := p.IssueSession("user-1", "a@b.co")

	otherAud := NewTokenProvider(p.privateKey, p.publicKey, "test-issuer", "other-audience", time.Hour)
	wrongAud, _, _ := otherAud.IssueSession("user-1", "a@b.co")

	expiredProvider := NewTokenProvider(p.privateKey, p.publicKey, "test-issuer", "test-audience", time.Hour)
	expiredProvider.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, _ := expiredProvider.IssueSession("user-1", "a@b.co")

	ec, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	foreign := NewTokenProvider(ec, &ec.PublicKey, "test-issuer", "test-audience", time.Hour)
	foreignToken, _, _ := foreign.IssueSession("user-1", "a@b.co")

	tests := map[string]string{
		"garbage":        "invalid-token",
		"tampered":       good + "x",
		"wrong audience": wrongAud,
		"expired":        expired,
		"foreign key":    foreignToken,
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := p.ValidateSession(tok); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("want ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenProvider_ES256(t *testing.T) {
	ec, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	p := NewTokenProvider(ec, &ec.PublicKey, "iss", "aud", 0)
	if p.ttl != DefaultSessionTTL {
		t.Errorf("ttl = %v, want default", p.ttl)
	}
	token, _, err := p.IssueSession("u", "e@x.io")
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if _, err := p.ValidateSession(token); err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
}
