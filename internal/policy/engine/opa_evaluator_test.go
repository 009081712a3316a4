package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	userdomain "jobpilot/backend/internal/user/domain"
)

func TestOPAEvaluator_DefaultPolicy(t *testing.T) {
	ctx := context.Background()
	e, err := NewOPAEvaluator(ctx, "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	tests := []struct {
		name       string
		user       *userdomain.User
		wantAllow  bool
		wantReason string
	}{
		{"mobile verified", &userdomain.User{IsMobileVerified: true}, true, ""},
		{"both verified", &userdomain.User{IsMobileVerified: true, IsEmailVerified: true}, true, ""},
		{"email only", &userdomain.User{IsEmailVerified: true}, false, DefaultDenyReason},
		{"unverified", &userdomain.User{}, false, DefaultDenyReason},
		{"nil user", nil, false, DefaultDenyReason},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := e.EvaluateLogin(ctx, tc.user)
			if err != nil {
				t.Fatalf("EvaluateLogin: %v", err)
			}
			if d.Allow != tc.wantAllow || d.Reason != tc.wantReason {
				t.Errorf("decision = %+v, want allow=%v reason=%q", d, tc.wantAllow, tc.wantReason)
			}
		})
	}
}

func TestOPAEvaluator_CustomPolicyFromFile(t *testing.T) {
	lenient := `package jobpilot.login_admission

default allow := false

allow if {
	input.user.is_mobile_verified
}

allow if {
	input.user.is_email_verified
}
`
	path := filepath.Join(t.TempDir(), "login.rego")
	if err := os.WriteFile(path, []byte(lenient), 0o600); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	e, err := NewOPAEvaluatorFromFile(ctx, path)
	if err != nil {
		t.Fatalf("NewOPAEvaluatorFromFile: %v", err)
	}
	d, err := e.EvaluateLogin(ctx, &userdomain.User{IsEmailVerified: true})
	if err != nil || !d.Allow {
		t.Fatalf("email-verified user should be admitted by lenient policy: %+v, %v", d, err)
	}
	d, err = e.EvaluateLogin(ctx, &userdomain.User{})
	if err != nil || d.Allow || d.Reason != DefaultDenyReason {
		t.Fatalf("unverified user: %+v, %v", d, err)
	}
}

func TestNewOPAEvaluator_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := NewOPAEvaluator(ctx, "package broken\n\nallow if {"); err == nil {
		t.Error("syntax error should fail compilation")
	}
	if _, err := NewOPAEvaluatorFromFile(ctx, "/nonexistent/login.rego"); err == nil {
		t.Error("missing policy file should fail")
	}
}

func TestOPAEvaluator_HealthCheck(t *testing.T) {
	e, err := NewOPAEvaluator(context.Background(), "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	if err := e.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

var _ AdmissionEvaluator = (*OPAEvaluator)(nil)
