// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP API listens on (e.g. :5000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// GRPCAddr is the address of the gRPC health endpoint (e.g. :9090).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// DBMaxOpenConns caps the connection pool.
	DBMaxOpenConns int `mapstructure:"DB_MAX_OPEN_CONNS"`
	// StoreTimeout bounds every round trip to Postgres.
	StoreTimeout time.Duration `mapstructure:"STORE_TIMEOUT"`
	// VerifierTimeout bounds every call to the external identity verifier.
	VerifierTimeout time.Duration `mapstructure:"VERIFIER_TIMEOUT"`
	// UploadTimeout bounds every object storage upload.
	UploadTimeout time.Duration `mapstructure:"UPLOAD_TIMEOUT"`

	// JWTPrivateKey is the PEM-encoded private key (RSA or ECDSA) or path to file.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or path to file.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	JWTIssuer    string `mapstructure:"JWT_ISSUER"`
	JWTAudience  string `mapstructure:"JWT_AUDIENCE"`
	// SessionTTL is the session token lifetime; 90 days by default.
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31).
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// LoginPolicyFile optionally points at a Rego module replacing the default login admission policy.
	LoginPolicyFile string `mapstructure:"LOGIN_POLICY_FILE"`

	// FirebaseProjectID is the project whose ID tokens prove phone ownership.
	FirebaseProjectID string `mapstructure:"FIREBASE_PROJECT_ID"`
	// FirebaseJWKSURL overrides the securetoken JWKS endpoint (tests, emulators).
	FirebaseJWKSURL string `mapstructure:"FIREBASE_JWKS_URL"`
	// DevVerifier enables the in-memory proof issuer (POST /dev/proof). Must not be true in production.
	DevVerifier bool `mapstructure:"DEV_VERIFIER"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `mapstructure:"LOG_LEVEL"`

	S3Bucket   string `mapstructure:"S3_BUCKET"`
	S3Region   string `mapstructure:"S3_REGION"`
	S3Endpoint string `mapstructure:"S3_ENDPOINT"`
	// S3PublicBaseURL, when set, prefixes object keys to build the returned image URL (CDN, MinIO).
	S3PublicBaseURL string `mapstructure:"S3_PUBLIC_BASE_URL"`
	// UploadFolder is the logical folder images are stored under.
	UploadFolder string `mapstructure:"UPLOAD_FOLDER"`

	// CORSAllowedOrigins is a comma-separated origin list; "*" allows all.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// OTLPEndpoint is the OTLP gRPC collector; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	ServiceName  string `mapstructure:"OTEL_SERVICE_NAME"`

	// KafkaBrokers is a comma-separated list of brokers; when set, telemetry events are also written to Kafka.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// EventsKafkaTopic is the topic telemetry events are written to.
	EventsKafkaTopic string `mapstructure:"EVENTS_KAFKA_TOPIC"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	// Every key needs a default so Unmarshal picks up its env var.
	v.SetDefault("HTTP_ADDR", ":5000")
	v.SetDefault("GRPC_ADDR", ":9090")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("VERIFIER_TIMEOUT", "5s")
	v.SetDefault("UPLOAD_TIMEOUT", "15s")
	v.SetDefault("JWT_PRIVATE_KEY", "")
	v.SetDefault("JWT_PUBLIC_KEY", "")
	v.SetDefault("JWT_ISSUER", "jobpilot-auth")
	v.SetDefault("JWT_AUDIENCE", "jobpilot-api")
	v.SetDefault("SESSION_TTL", "2160h") // 90d
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LOGIN_POLICY_FILE", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_JWKS_URL", "")
	v.SetDefault("DEV_VERIFIER", false)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_PUBLIC_BASE_URL", "")
	v.SetDefault("UPLOAD_FOLDER", "company_uploads")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_SERVICE_NAME", "jobpilot-backend")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("EVENTS_KAFKA_TOPIC", "jobpilot-events")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.DevVerifier && cfg.IsProduction() {
		return nil, errors.New("config: DEV_VERIFIER must not be true when APP_ENV=production")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if cfg.StoreTimeout <= 0 || cfg.VerifierTimeout <= 0 || cfg.UploadTimeout <= 0 {
		return nil, errors.New("config: STORE_TIMEOUT, VERIFIER_TIMEOUT and UPLOAD_TIMEOUT must be positive")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("config: SESSION_TTL must be positive")
	}

	return &cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated config.
func (c *Config) KafkaBrokersList() []string {
	if c == nil {
		return nil
	}
	return splitList(c.KafkaBrokers)
}

// CORSOrigins returns the allowed CORS origins; defaults to "*".
func (c *Config) CORSOrigins() []string {
	out := splitList(c.CORSAllowedOrigins)
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
