package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-explorer/internal/apperror"
)

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"MONGO_URI":  "mongodb://localhost:27017/explorer",
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "logs/server.log", cfg.LogFile)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DB_URL":               "mysql://root:pw@tcp(localhost:3306)/explorer",
		"JWT_SECRET":           "s3cret",
		"PORT":                 "8080",
		"RATE_LIMIT_WINDOW":    "1m",
		"RATE_LIMIT_MAX":       "5",
		"BCRYPT_COST":          "4",
		"CORS_ALLOWED_ORIGINS": "http://localhost:5173, https://explorer.example",
		"LOG_FILE":             "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "mysql://root:pw@tcp(localhost:3306)/explorer", cfg.DBUrl)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, []string{"http://localhost:5173", "https://explorer.example"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.LogFile)
}

func TestFromEnv_EmptyMongoURIFallsBackToDBURL(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"MONGO_URI":  "",
		"DB_URL":     "mysql://root:pw@tcp(db:3306)/explorer",
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "mysql://root:pw@tcp(db:3306)/explorer", cfg.DBUrl)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_MongoURIWins(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"MONGO_URI": "mongodb://localhost/explorer",
		"DB_URL":    "mysql://root:pw@tcp(db:3306)/explorer",
	}))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost/explorer", cfg.DBUrl)
}

func TestFromEnv_BadNumber(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{"RATE_LIMIT_MAX": "lots"}))

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindConfiguration, appErr.Kind)
}

func TestValidate_MissingSecretIsFatalConfig(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"MONGO_URI": "mongodb://localhost"}))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, &apperror.Error{Kind: apperror.KindConfiguration}))
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_MissingDatabase(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "x"}))
	require.NoError(t, err)

	assert.ErrorContains(t, cfg.Validate(), "MONGO_URI")
}
