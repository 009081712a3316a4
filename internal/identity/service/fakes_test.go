package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	policyengine "jobpilot/backend/internal/policy/engine"
	"jobpilot/backend/internal/security"
	userdomain "jobpilot/backend/internal/user/domain"
	userrepo "jobpilot/backend/internal/user/repository"
	"jobpilot/backend/internal/verifier"
)

// memUserRepo emulates the users table including its unique constraints on email and mobile_no.
type memUserRepo struct {
	mu       sync.Mutex
	byID     map[string]*userdomain.User
	byEmail  map[string]string
	byMobile map[string]string
	// createGate, when set, holds every Create until all callers have arrived.
	createGate *sync.WaitGroup
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:     make(map[string]*userdomain.User),
		byEmail:  make(map[string]string),
		byMobile: make(map[string]string),
	}
}

func (r *memUserRepo) get(id string) *userdomain.User {
	u, ok := r.byID[id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(r.byEmail[email]), nil
}

func (r *memUserRepo) GetByMobile(_ context.Context, mobileNo string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(r.byMobile[mobileNo]), nil
}

func (r *memUserRepo) Create(_ context.Context, u *userdomain.User) error {
	if r.createGate != nil {
		r.createGate.Done()
		r.createGate.Wait()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return userrepo.ErrEmailTaken
	}
	if _, ok := r.byMobile[u.MobileNo]; ok {
		return userrepo.ErrMobileTaken
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	r.byMobile[u.MobileNo] = u.ID
	return nil
}

func (r *memUserRepo) ReplacePending(_ context.Context, u *userdomain.User) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[u.ID]
	if !ok || cur.IsMobileVerified {
		return nil, nil
	}
	if owner, ok := r.byMobile[u.MobileNo]; ok && owner != u.ID {
		return nil, userrepo.ErrMobileTaken
	}
	delete(r.byMobile, cur.MobileNo)
	cur.FullName = u.FullName
	cur.PasswordHash = u.PasswordHash
	cur.Gender = u.Gender
	cur.MobileNo = u.MobileNo
	cur.UpdatedAt = time.Now().UTC()
	r.byMobile[cur.MobileNo] = cur.ID
	return r.get(cur.ID), nil
}

func (r *memUserRepo) SetMobileVerified(_ context.Context, mobileNo string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byMobile[mobileNo]
	if !ok {
		return nil, nil
	}
	r.byID[id].IsMobileVerified = true
	r.byID[id].UpdatedAt = time.Now().UTC()
	return r.get(id), nil
}

func (r *memUserRepo) SetEmailVerified(_ context.Context, email string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	r.byID[id].IsEmailVerified = true
	r.byID[id].UpdatedAt = time.Now().UTC()
	return r.get(id), nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// stubVerifier maps proof tokens to principals.
type stubVerifier struct {
	principals map[string]*verifier.Principal
	err        error
}

func (v *stubVerifier) Verify(_ context.Context, token string) (*verifier.Principal, error) {
	if v.err != nil {
		return nil, v.err
	}
	p, ok := v.principals[token]
	if !ok {
		return nil, verifier.ErrInvalidProof
	}
	return p, nil
}

type fixture struct {
	svc    *AuthService
	users  *memUserRepo
	proofs *stubVerifier
	tokens *security.TokenProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("token provider: %v", err)
	}
	admission, err := policyengine.NewOPAEvaluator(context.Background(), policyengine.DefaultLoginPolicy)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	users := newMemUserRepo()
	proofs := &stubVerifier{principals: make(map[string]*verifier.Principal)}
	svc := NewAuthService(users, security.NewHasher(4), tokens, proofs, admission, Options{})
	return &fixture{svc: svc, users: users, proofs: proofs, tokens: tokens}
}

func validRegistration(email, mobile string) RegisterInput {
	return RegisterInput{
		Email:    email,
		Password: "s3cret!pass",
		FullName: "Asha Rao",
		Gender:   "f",
		MobileNo: mobile,
	}
}
