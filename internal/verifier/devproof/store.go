// Package devproof issues and verifies proof tokens in memory for local development,
// standing in for the external identity provider. Never enabled in production.
package devproof

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"jobpilot/backend/internal/verifier"
)

// DefaultTTL is how long an issued proof stays valid.
const DefaultTTL = 10 * time.Minute

type entry struct {
	phone     string
	expiresAt time.Time
}

// Store is an in-memory proof issuer and verifier.Verifier.
type Store struct {
	mu   sync.RWMutex
	m    map[string]entry
	ttl  time.Duration
	nowF func() time.Time
}

// NewStore returns an empty Store. ttl <= 0 means DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		m:    make(map[string]entry),
		ttl:  ttl,
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

// Issue returns a fresh proof token asserting phone.
func (s *Store) Issue(ctx context.Context, phone string) (token string, expiresAt time.Time, err error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, err
	}
	token = hex.EncodeToString(b)
	expiresAt = s.nowF().Add(s.ttl)
	s.mu.Lock()
	s.m[token] = entry{phone: phone, expiresAt: expiresAt}
	s.mu.Unlock()
	return token, expiresAt, nil
}

// Verify returns the principal for an unexpired token. Tokens are not consumed, so a proof
// can be re-applied until it expires.
func (s *Store) Verify(ctx context.Context, proofToken string) (*verifier.Principal, error) {
	s.mu.RLock()
	e, ok := s.m[proofToken]
	s.mu.RUnlock()
	if !ok {
		return nil, verifier.ErrInvalidProof
	}
	if !e.expiresAt.After(s.nowF()) {
		s.mu.Lock()
		delete(s.m, proofToken)
		s.mu.Unlock()
		return nil, verifier.ErrInvalidProof
	}
	return &verifier.Principal{Subject: "dev:" + e.phone, PhoneNumber: e.phone}, nil
}

var _ verifier.Verifier = (*Store)(nil)
