// Package server assembles the HTTP router and the gRPC health server.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	companyhandler "jobpilot/backend/internal/company/handler"
	healthhandler "jobpilot/backend/internal/health/handler"
	identityhandler "jobpilot/backend/internal/identity/handler"
	"jobpilot/backend/internal/logging"
	"jobpilot/backend/internal/platform/httpx"
	"jobpilot/backend/internal/security"
	"jobpilot/backend/internal/server/middleware"
	devproofhandler "jobpilot/backend/internal/verifier/devproof/handler"
)

// Deps holds the handlers and collaborators the router mounts.
type Deps struct {
	Logger  *zap.Logger
	Tokens  *security.TokenProvider
	Auth    *identityhandler.AuthHandler
	Company *companyhandler.CompanyHandler
	Health  *healthhandler.Checker
	// DevProof is mounted at POST /dev/proof when non-nil. Set only with the dev verifier outside production.
	DevProof    *devproofhandler.DevProofHandler
	CORSOrigins []string
	ServiceName string
}

// NewRouter returns the instrumented HTTP handler of the API.
//
// Route → handler mapping:
//   - /healthz, /readyz → internal/health/handler
//   - /api/auth/*       → internal/identity/handler
//   - /api/company/*    → internal/company/handler (Bearer session required)
//   - /dev/proof        → internal/verifier/devproof/handler
func NewRouter(d Deps) http.Handler {
	logger := logging.OrNop(d.Logger)
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(corsOptions(d.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.Fail(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	if d.Health != nil {
		r.Get("/healthz", d.Health.Liveness)
		r.Get("/readyz", d.Health.Readiness)
	}
	if d.Auth != nil {
		r.Route("/api/auth", d.Auth.Routes)
	}
	if d.Company != nil {
		r.Route("/api/company", func(r chi.Router) {
			r.Use(middleware.Auth(d.Tokens))
			d.Company.Routes(r)
		})
	}
	if d.DevProof != nil {
		r.Post("/dev/proof", d.DevProof.Issue)
	}

	name := d.ServiceName
	if name == "" {
		name = "http"
	}
	return otelhttp.NewHandler(r, name,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := len(origins) == 1 && origins[0] == "*"
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}
}
