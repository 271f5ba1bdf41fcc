package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"country-explorer/internal/apperror"
)

type Config struct {
	DBUrl           string
	JWTSecret       string
	Port            string
	RateLimitWindow time.Duration
	RateLimitMax    int
	BcryptCost      int
	AllowedOrigins  []string
	LogLevel        string
	LogFile         string
}

const (
	defaultPort            = "3001"
	defaultRateLimitWindow = 15 * time.Minute
	defaultRateLimitMax    = 100
	defaultBcryptCost      = 12
	defaultLogFile         = "logs/server.log"
)

// LoadConfig reads .env when present and then the process environment.
// Malformed numbers are kept as errors for Validate to report.
func LoadConfig() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, using environment and defaults")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function so tests can supply their own env.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok {
			return v
		}
		return fallback
	}

	dbURL := get("MONGO_URI", "")
	if dbURL == "" {
		dbURL = get("DB_URL", "")
	}

	cfg := Config{
		DBUrl:          dbURL,
		JWTSecret:      get("JWT_SECRET", ""),
		Port:           get("PORT", defaultPort),
		LogLevel:       get("LOG_LEVEL", "info"),
		LogFile:        get("LOG_FILE", defaultLogFile),
		AllowedOrigins: splitList(get("CORS_ALLOWED_ORIGINS", "*")),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	window, err := time.ParseDuration(get("RATE_LIMIT_WINDOW", defaultRateLimitWindow.String()))
	if err != nil {
		return cfg, apperror.Configuration(fmt.Sprintf("RATE_LIMIT_WINDOW is not a duration: %v", err))
	}
	cfg.RateLimitWindow = window

	if cfg.RateLimitMax, err = atoi(get("RATE_LIMIT_MAX", ""), defaultRateLimitMax); err != nil {
		return cfg, apperror.Configuration(fmt.Sprintf("RATE_LIMIT_MAX is not a number: %v", err))
	}
	if cfg.BcryptCost, err = atoi(get("BCRYPT_COST", ""), defaultBcryptCost); err != nil {
		return cfg, apperror.Configuration(fmt.Sprintf("BCRYPT_COST is not a number: %v", err))
	}

	return cfg, nil
}

// Validate reports missing collaborators. It runs once at startup; a failure
// here is fatal and never surfaces per request.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return apperror.Configuration("JWT_SECRET is not defined in environment variables")
	}
	if c.DBUrl == "" {
		return apperror.Configuration("MONGO_URI or DB_URL must be set")
	}
	if c.RateLimitWindow <= 0 || c.RateLimitMax <= 0 {
		return apperror.Configuration("rate limit window and max must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return apperror.Configuration("BCRYPT_COST must be between 4 and 31")
	}
	return nil
}

func atoi(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.Atoi(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
