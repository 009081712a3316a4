// server runs the HTTP API and the gRPC health endpoint: go run ./cmd/server
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	companyhandler "jobpilot/backend/internal/company/handler"
	companyrepo "jobpilot/backend/internal/company/repository"
	companyservice "jobpilot/backend/internal/company/service"
	"jobpilot/backend/internal/config"
	"jobpilot/backend/internal/db"
	healthhandler "jobpilot/backend/internal/health/handler"
	identityhandler "jobpilot/backend/internal/identity/handler"
	identityservice "jobpilot/backend/internal/identity/service"
	"jobpilot/backend/internal/logging"
	"jobpilot/backend/internal/platform/httpx"
	policyengine "jobpilot/backend/internal/policy/engine"
	"jobpilot/backend/internal/security"
	"jobpilot/backend/internal/server"
	"jobpilot/backend/internal/storage"
	s3store "jobpilot/backend/internal/storage/s3"
	"jobpilot/backend/internal/telemetry"
	telemetryotel "jobpilot/backend/internal/telemetry/otel"
	"jobpilot/backend/internal/telemetry/producer"
	userrepo "jobpilot/backend/internal/user/repository"
	"jobpilot/backend/internal/verifier"
	"jobpilot/backend/internal/verifier/devproof"
	devproofhandler "jobpilot/backend/internal/verifier/devproof/handler"
	"jobpilot/backend/internal/verifier/firebase"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthCheckInterval = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	providers, err := telemetryotel.NewProviders(ctx, telemetryotel.Options{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	providers.SetGlobal()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(sctx); err != nil {
			logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()
	metrics, err := telemetry.NewMetrics(providers.MeterProvider.Meter(cfg.ServiceName))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	var events telemetry.EventEmitter = telemetryotel.NewEventEmitter(providers.LoggerProvider)
	if kp := producer.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.EventsKafkaTopic); kp != nil {
		defer kp.Close()
		events = telemetry.Multi(events, kp)
		logger.Info("kafka event producer enabled", zap.String("topic", cfg.EventsKafkaTopic))
	}

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	conn, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer conn.Close()

	signer, pub, err := security.LoadKeyPair(cfg.JWTPrivateKey, cfg.JWTPublicKey)
	if err != nil {
		return fmt.Errorf("jwt keys: %w", err)
	}
	tokens := security.NewTokenProvider(signer, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.SessionTTL)

	admission, err := newAdmission(ctx, cfg)
	if err != nil {
		return fmt.Errorf("login policy: %w", err)
	}

	proofs, devStore, err := newVerifier(ctx, cfg)
	if err != nil {
		return fmt.Errorf("verifier: %w", err)
	}

	uploader, err := newUploader(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	users := userrepo.NewPostgresRepository(conn, cfg.StoreTimeout)
	profiles := companyrepo.NewPostgresRepository(conn, cfg.StoreTimeout)

	authSvc := identityservice.NewAuthService(users, security.NewHasher(cfg.BcryptCost), tokens, proofs, admission,
		identityservice.Options{
			VerifierTimeout: cfg.VerifierTimeout,
			Logger:          logger.Named("auth"),
			Events:          events,
			Metrics:         metrics,
		})
	profileSvc := companyservice.NewProfileService(profiles, uploader, companyservice.Options{
		UploadFolder:  cfg.UploadFolder,
		UploadTimeout: cfg.UploadTimeout,
		Logger:        logger.Named("company"),
		Events:        events,
		Metrics:       metrics,
	})

	validate := httpx.NewValidator()
	authHandler, err := identityhandler.NewAuthHandler(authSvc, validate, logger)
	if err != nil {
		return fmt.Errorf("validator: %w", err)
	}
	checker := healthhandler.NewChecker(conn, admission)
	deps := server.Deps{
		Logger:      logger,
		Tokens:      tokens,
		Auth:        authHandler,
		Company:     companyhandler.NewCompanyHandler(profileSvc, validate, logger),
		Health:      checker,
		CORSOrigins: cfg.CORSOrigins(),
		ServiceName: cfg.ServiceName,
	}
	if devStore != nil {
		deps.DevProof = devproofhandler.NewDevProofHandler(devStore, logger)
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	grpcSrv, healthSrv := server.NewGRPCServer()
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("gRPC health server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcSrv.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go checker.Watch(watchCtx, healthSrv, healthCheckInterval)

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errCh:
		logger.Error("server failed, shutting down", zap.Error(serveErr))
	}

	stopWatch()
	healthSrv.Shutdown()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	grpcSrv.GracefulStop()
	if err := telemetry.Drain(sctx); err != nil {
		logger.Warn("telemetry drain", zap.Error(err))
	}
	logger.Info("servers stopped")
	return serveErr
}

func newAdmission(ctx context.Context, cfg *config.Config) (*policyengine.OPAEvaluator, error) {
	if cfg.LoginPolicyFile != "" {
		return policyengine.NewOPAEvaluatorFromFile(ctx, cfg.LoginPolicyFile)
	}
	return policyengine.NewOPAEvaluator(ctx, policyengine.DefaultLoginPolicy)
}

// newVerifier returns the dev store as well when DEV_VERIFIER is on so the issuing route can be mounted.
func newVerifier(ctx context.Context, cfg *config.Config) (verifier.Verifier, *devproof.Store, error) {
	if cfg.DevVerifier {
		store := devproof.NewStore(devproof.DefaultTTL)
		return store, store, nil
	}
	if cfg.FirebaseProjectID == "" {
		return nil, nil, errors.New("FIREBASE_PROJECT_ID is required unless DEV_VERIFIER=true")
	}
	v, err := firebase.New(ctx, firebase.Config{
		ProjectID: cfg.FirebaseProjectID,
		JWKSURL:   cfg.FirebaseJWKSURL,
		HTTPClient: &http.Client{
			Timeout: cfg.VerifierTimeout,
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return v, nil, nil
}

// newUploader returns nil without a bucket; image updates then fail with UploadFailed.
func newUploader(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Uploader, error) {
	if cfg.S3Bucket == "" {
		logger.Warn("S3_BUCKET is not set; image uploads are disabled")
		return nil, nil
	}
	return s3store.New(ctx, s3store.Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
}
