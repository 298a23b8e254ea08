package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Supabase SupabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// SupabaseConfig holds connection values for the identity provider.
type SupabaseConfig struct {
	URL     string
	AnonKey string
}

// AuthConfig defines authentication parameters.
//
// JWTSecret is read for parity with existing deployments that set it, but
// token verification is delegated entirely to the provider; nothing signs
// or parses tokens locally.
type AuthConfig struct {
	JWTSecret string
}

// CORSConfig holds the allowed browser origin. The same origin is used to
// build password-reset redirect links.
type CORSConfig struct {
	FrontendURL string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "auth-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Supabase: SupabaseConfig{
			URL:     os.Getenv("SUPABASE_URL"),
			AnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "default-secret"),
		},
		CORS: CORSConfig{
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
