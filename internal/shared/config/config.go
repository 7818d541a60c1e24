package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const devJWTSecret = "your-secret-key"

// Config holds application configuration.
type Config struct {
	Port               string        `env:"PORT" envDefault:"5000"`
	Env                string        `env:"ENV" envDefault:"dev"`
	CORSAllowOrigin    []string      `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	JWTSecret          string        `env:"JWT_SECRET"`
	JWTExpiresIn       time.Duration `env:"JWT_EXPIRES_IN" envDefault:"0s"`
	ObjectStoreType    string        `env:"OBJECT_STORE" envDefault:"local"`
	UploadDir          string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	AWSRegion          string        `env:"AWS_REGION"`
	S3Bucket           string        `env:"S3_BUCKET"`
	S3Prefix           string        `env:"S3_PREFIX"`
	SSEKMSKeyID        string        `env:"SSE_KMS_KEY_ID"`
	MaxUploadBytes     int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	ExtractTimeout     time.Duration `env:"EXTRACT_TIMEOUT" envDefault:"10s"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	LLMSimulateLatency bool          `env:"LLM_SIMULATE_LATENCY" envDefault:"true"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")
	return Parse()
}

// Parse builds a Config from the current environment without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.ObjectStoreType = normalizeStoreType(cfg.ObjectStoreType)
	cfg.CORSAllowOrigin = trimAll(cfg.CORSAllowOrigin)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	if cfg.JWTSecret == "" {
		if !IsDevLike(cfg.Env) {
			return Config{}, fmt.Errorf("JWT_SECRET is required in %s", cfg.Env)
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.JWTExpiresIn < 0 {
		cfg.JWTExpiresIn = 0
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 10 * time.Second
	}
	return cfg, nil
}

// IsDevLike reports whether env is a local development environment.
func IsDevLike(env string) bool {
	switch env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func trimAll(in []string) []string {
	var out []string
	for _, p := range in {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "test":
		return "test"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
