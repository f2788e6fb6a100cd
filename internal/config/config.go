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
	App     AppConfig
	Remote  RemoteConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Session SessionConfig
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

// RemoteConfig holds settings for the remote ticket/AI function backend.
// Function names default to the deployed Lambda names.
type RemoteConfig struct {
	Region      string
	EndpointURL string

	ClassifyFn        string
	CreateFn          string
	UserTicketsFn     string
	TicketByIDFn      string
	AllTicketsFn      string
	ResolvedTicketsFn string
	LatestTicketFn    string
	AttachmentsFn     string
	SearchSimilarFn   string
	UpdateStatusFn    string
	SuggestionFn      string
	SummaryFn         string
}

// RedisConfig holds Redis connection values. An empty Addr disables
// Redis and selects the in-memory session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. Plaintext passwords are
// hashed at startup when no precomputed bcrypt hash is supplied.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int

	AdminEmail         string
	AdminPassword      string
	AdminPasswordHash  string
	UserPassword       string
	UserPasswordHash   string
	AllowedEmailDomain string
}

// SessionConfig controls the per-session AI state store.
type SessionConfig struct {
	TTLMinutes int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "itsm-assistant"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Remote: RemoteConfig{
			Region:      getEnv("REMOTE_AWS_REGION", "us-east-1"),
			EndpointURL: os.Getenv("REMOTE_ENDPOINT_URL"),

			ClassifyFn:        getEnv("REMOTE_FN_CLASSIFY", "classify_ticket_lambda"),
			CreateFn:          getEnv("REMOTE_FN_CREATE", "create_ticket_lambda"),
			UserTicketsFn:     getEnv("REMOTE_FN_USER_TICKETS", "get_user_tickets"),
			TicketByIDFn:      getEnv("REMOTE_FN_TICKET_BY_ID", "get_ticket_by_id"),
			AllTicketsFn:      getEnv("REMOTE_FN_ALL_TICKETS", "get_all_tickets"),
			ResolvedTicketsFn: getEnv("REMOTE_FN_RESOLVED_TICKETS", "get_resolved_tickets"),
			LatestTicketFn:    getEnv("REMOTE_FN_LATEST_TICKET", "get_latest_ticket"),
			AttachmentsFn:     getEnv("REMOTE_FN_ATTACHMENTS", "get_ticket_attachments"),
			SearchSimilarFn:   getEnv("REMOTE_FN_SEARCH_SIMILAR", "search_similar_tickets"),
			UpdateStatusFn:    getEnv("REMOTE_FN_UPDATE_STATUS", "update_ticket_status"),
			SuggestionFn:      getEnv("REMOTE_FN_SUGGESTION", "get_resolution_suggestion"),
			SummaryFn:         getEnv("REMOTE_FN_SUMMARY", "generate_it_summary"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),

			AdminEmail:         getEnv("AUTH_ADMIN_EMAIL", "admin@nsight.com"),
			AdminPassword:      os.Getenv("AUTH_ADMIN_PASSWORD"),
			AdminPasswordHash:  os.Getenv("AUTH_ADMIN_PASSWORD_HASH"),
			UserPassword:       os.Getenv("AUTH_USER_PASSWORD"),
			UserPasswordHash:   os.Getenv("AUTH_USER_PASSWORD_HASH"),
			AllowedEmailDomain: getEnv("AUTH_ALLOWED_EMAIL_DOMAIN", "nsight.com"),
		},
		Session: SessionConfig{
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 120),
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

// TTL returns the session lifetime.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(s.TTLMinutes) * time.Minute
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
