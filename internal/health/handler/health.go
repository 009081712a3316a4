// Package handler serves liveness and readiness over HTTP and keeps the standard gRPC
// health service in step with readiness.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"jobpilot/backend/internal/platform/httpx"
)

// Pinger checks store connectivity (e.g. *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker checks that the admission policy can be evaluated.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// DefaultCheckTimeout bounds a single readiness check.
const DefaultCheckTimeout = 2 * time.Second

// Checker runs the readiness checks. Nil dependencies are skipped.
type Checker struct {
	pinger  Pinger
	policy  PolicyChecker
	timeout time.Duration
}

func NewChecker(pinger Pinger, policy PolicyChecker) *Checker {
	return &Checker{pinger: pinger, policy: policy, timeout: DefaultCheckTimeout}
}

// Ready returns the first failing dependency.
func (c *Checker) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if c.pinger != nil {
		if err := c.pinger.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if c.policy != nil {
		if err := c.policy.HealthCheck(ctx); err != nil {
			return fmt.Errorf("policy: %w", err)
		}
	}
	return nil
}

// Liveness always answers 200 while the process serves requests.
func (c *Checker) Liveness(w http.ResponseWriter, _ *http.Request) {
	httpx.Success(w, http.StatusOK, "ok", nil)
}

// Readiness answers 503 when a dependency is unavailable.
func (c *Checker) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := c.Ready(r.Context()); err != nil {
		httpx.Fail(w, http.StatusServiceUnavailable, "not ready: "+err.Error())
		return
	}
	httpx.Success(w, http.StatusOK, "ready", nil)
}

// Sync sets the overall serving status of hs from one readiness check.
func (c *Checker) Sync(ctx context.Context, hs *health.Server) {
	status := healthpb.HealthCheckResponse_SERVING
	if c.Ready(ctx) != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	hs.SetServingStatus("", status)
}

// Watch re-runs Sync every interval until ctx is done.
func (c *Checker) Watch(ctx context.Context, hs *health.Server, interval time.Duration) {
	c.Sync(ctx, hs)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Sync(ctx, hs)
		}
	}
}
