package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"jobpilot/backend/internal/identity/service"
	"jobpilot/backend/internal/platform/apperr"
	"jobpilot/backend/internal/platform/httpx"
)

type stubAuth struct {
	register func(service.RegisterInput) (*service.RegisterResult, error)
	login    func(service.LoginInput) (*service.LoginResult, error)
	mobile   func(service.MobileProofInput) (*service.VerificationResult, error)
	email    func(string) (*service.VerificationResult, error)
}

func (s *stubAuth) Register(_ context.Context, in service.RegisterInput) (*service.RegisterResult, error) {
	return s.register(in)
}

func (s *stubAuth) Login(_ context.Context, in service.LoginInput) (*service.LoginResult, error) {
	return s.login(in)
}

func (s *stubAuth) ApplyMobileProof(_ context.Context, in service.MobileProofInput) (*service.VerificationResult, error) {
	return s.mobile(in)
}

func (s *stubAuth) ApplyEmailProof(_ context.Context, email string) (*service.VerificationResult, error) {
	return s.email(email)
}

func newRouter(t *testing.T, auth AuthService) http.Handler {
	t.Helper()
	h, err := NewAuthHandler(auth, nil, nil)
	if err != nil {
		t.Fatalf("NewAuthHandler: %v", err)
	}
	r := chi.NewRouter()
	r.Route("/api/auth", h.Routes)
	return r
}

func do(h http.Handler, method, target, body string) (*httptest.ResponseRecorder, httpx.Envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env httpx.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

const validBody = `{"email":"asha@example.com","password":"s3cret!pass","full_name":"Asha Rao","gender":"f","mobile_no":"+919876543210"}`

func TestRegister_Status(t *testing.T) {
	testCases := []struct {
		name   string
		result *service.RegisterResult
		err    error
		status int
	}{
		{"created", &service.RegisterResult{UserID: "u1"}, nil, http.StatusCreated},
		{"retried", &service.RegisterResult{UserID: "u1", Retried: true}, nil, http.StatusOK},
		{"conflict", nil, apperr.Conflict("email already verified"), http.StatusConflict},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got service.RegisterInput
			h := newRouter(t, &stubAuth{register: func(in service.RegisterInput) (*service.RegisterResult, error) {
				got = in
				return tc.result, tc.err
			}})
			rec, env := do(h, http.MethodPost, "/api/auth/register", validBody)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			if env.Success != (tc.err == nil) {
				t.Errorf("success = %v", env.Success)
			}
			if got.MobileNo != "+919876543210" || got.Gender != "f" {
				t.Errorf("input = %+v", got)
			}
		})
	}
}

func TestRegister_Validation(t *testing.T) {
	called := false
	h := newRouter(t, &stubAuth{register: func(service.RegisterInput) (*service.RegisterResult, error) {
		called = true
		return &service.RegisterResult{}, nil
	}})
	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{"weak password", `{"email":"a@b.co","password":"password","full_name":"A","gender":"m","mobile_no":"+919876543210"}`,
			"password must be 8 to 72 characters and contain a number and a special character"},
		{"bad gender", `{"email":"a@b.co","password":"s3cret!pass","full_name":"A","gender":"z","mobile_no":"+919876543210"}`,
			"gender must be one of m, f, o"},
		{"bad mobile", `{"email":"a@b.co","password":"s3cret!pass","full_name":"A","gender":"m","mobile_no":"98765"}`,
			"mobile_no must be in E.164 format"},
		{"mobile with letters", `{"email":"a@b.co","password":"s3cret!pass","full_name":"A","gender":"m","mobile_no":"+91abc98765xyz43210"}`,
			"mobile_no must be in E.164 format"},
		{"password too long", `{"email":"a@b.co","password":"` + strings.Repeat("a", 70) + `1!x","full_name":"A","gender":"m","mobile_no":"+919876543210"}`,
			"password must be 8 to 72 characters and contain a number and a special character"},
		{"missing email", `{"password":"s3cret!pass","full_name":"A","gender":"m","mobile_no":"+919876543210"}`,
			"email is required"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(h, http.MethodPost, "/api/auth/register", tc.body)
			if rec.Code != http.StatusBadRequest || env.Message != tc.message {
				t.Fatalf("status=%d message=%q, want 400 %q", rec.Code, env.Message, tc.message)
			}
		})
	}
	if called {
		t.Error("service called for invalid input")
	}
}

func TestLogin_Statuses(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"forbidden", apperr.Forbidden("verification incomplete"), http.StatusForbidden},
		{"unauthorized", apperr.Unauthorized("invalid credentials"), http.StatusUnauthorized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newRouter(t, &stubAuth{login: func(service.LoginInput) (*service.LoginResult, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				return &service.LoginResult{Token: "tok", User: service.SessionUser{ID: "u1"}}, nil
			}})
			rec, _ := do(h, http.MethodPost, "/api/auth/login", `{"email":"a@b.co","password":"x"}`)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.err == nil && !strings.Contains(rec.Body.String(), `"token":"tok"`) {
				t.Errorf("body = %s", rec.Body.String())
			}
		})
	}
}

func TestVerifyMobile_RequiresBothFields(t *testing.T) {
	h := newRouter(t, &stubAuth{mobile: func(in service.MobileProofInput) (*service.VerificationResult, error) {
		return &service.VerificationResult{UserID: "u1", IsMobileVerified: true}, nil
	}})
	if rec, _ := do(h, http.MethodPost, "/api/auth/verify-mobile", `{"id_token":"t"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing mobile_no status = %d", rec.Code)
	}
	if rec, _ := do(h, http.MethodPost, "/api/auth/verify-mobile", `{"mobile_no":"+919876543210"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing id_token status = %d", rec.Code)
	}
	if rec, _ := do(h, http.MethodPost, "/api/auth/verify-mobile", `{"id_token":"t","mobile_no":"+919876543210"}`); rec.Code != http.StatusOK {
		t.Errorf("valid status = %d", rec.Code)
	}
}

func TestVerifyEmail(t *testing.T) {
	var got string
	h := newRouter(t, &stubAuth{email: func(email string) (*service.VerificationResult, error) {
		got = email
		if email == "nobody@example.com" {
			return nil, apperr.NotFound("user not found")
		}
		return &service.VerificationResult{IsEmailVerified: true}, nil
	}})
	if rec, _ := do(h, http.MethodGet, "/api/auth/verify-email", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing email status = %d", rec.Code)
	}
	if rec, _ := do(h, http.MethodGet, "/api/auth/verify-email?email=asha%40example.com", ""); rec.Code != http.StatusOK || got != "asha@example.com" {
		t.Errorf("status = %d email = %q", rec.Code, got)
	}
	if rec, _ := do(h, http.MethodGet, "/api/auth/verify-email?email=nobody%40example.com", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown email status = %d", rec.Code)
	}
}
