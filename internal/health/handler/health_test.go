package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// mockPinger implements Pinger for tests.
type mockPinger struct {
	pingErr error
}

func (m *mockPinger) PingContext(context.Context) error {
	return m.pingErr
}

// mockPolicyChecker implements PolicyChecker for tests.
type mockPolicyChecker struct {
	healthErr error
}

func (m *mockPolicyChecker) HealthCheck(context.Context) error {
	return m.healthErr
}

func TestReadiness(t *testing.T) {
	testCases := []struct {
		name   string
		pinger Pinger
		policy PolicyChecker
		status int
	}{
		{"no dependencies", nil, nil, http.StatusOK},
		{"all healthy", &mockPinger{}, &mockPolicyChecker{}, http.StatusOK},
		{"database down", &mockPinger{pingErr: errors.New("connection refused")}, &mockPolicyChecker{}, http.StatusServiceUnavailable},
		{"policy broken", &mockPinger{}, &mockPolicyChecker{healthErr: errors.New("rego compile failed")}, http.StatusServiceUnavailable},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewChecker(tc.pinger, tc.policy)
			rec := httptest.NewRecorder()
			c.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}

func TestLiveness(t *testing.T) {
	c := NewChecker(&mockPinger{pingErr: errors.New("down")}, nil)
	rec := httptest.NewRecorder()
	c.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSync(t *testing.T) {
	ctx := context.Background()
	hs := health.NewServer()
	pinger := &mockPinger{}
	c := NewChecker(pinger, nil)

	c.Sync(ctx, hs)
	resp, err := hs.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}

	pinger.pingErr = errors.New("connection refused")
	c.Sync(ctx, hs)
	resp, _ = hs.Check(ctx, &healthpb.HealthCheckRequest{})
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("status = %v, want NOT_SERVING", resp.GetStatus())
	}
}
