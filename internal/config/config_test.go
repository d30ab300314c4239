package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "ENVIRONMENT", "WEB_DIR", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
	"STORE_DRIVER", "DATABASE_URL", "MONGO_URI", "MONGO_DATABASE", "JWT_SECRET",
	"JWT_EXPIRATION_HOURS", "BCRYPT_COST", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"ANALYTICS_CACHE_TTL",
}

// clearEnv unsets every key Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 30*time.Second, cfg.AnalyticsCacheTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_DevSecretFallback(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DevJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.UsingDevSecret)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "a-real-secret", cfg.JWTSecret)
	assert.False(t, cfg.UsingDevSecret)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ANALYTICS_CACHE_TTL", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreDriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, time.Minute, cfg.AnalyticsCacheTTL)
}

func TestLoad_MalformedNumbersKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BCRYPT_COST", "lots")
	t.Setenv("ANALYTICS_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 30*time.Second, cfg.AnalyticsCacheTTL)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "moodbite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
store_driver: mongo
mongo_database: moods
jwt_secret: from-file
cors_allowed_origins:
  - http://app.test
analytics_cache_ttl: 45s
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	// Environment wins over the file
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Port)
	assert.Equal(t, StoreDriverMongo, cfg.StoreDriver)
	assert.Equal(t, "moods", cfg.MongoDatabase)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, []string{"http://app.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 45*time.Second, cfg.AnalyticsCacheTTL)
	// Keys absent from the file keep their defaults
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown store driver", env: map[string]string{"STORE_DRIVER": "cassandra"}},
		{name: "non-positive expiry", env: map[string]string{"JWT_EXPIRATION_HOURS": "0"}},
		{name: "bcrypt cost above maximum", env: map[string]string{"BCRYPT_COST": "40"}},
		{name: "bcrypt cost below minimum", env: map[string]string{"BCRYPT_COST": "2"}},
		{name: "missing config file", env: map[string]string{"CONFIG_FILE": "/nonexistent/moodbite.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_BcryptCostBounds(t *testing.T) {
	for _, cost := range []string{"4", "31"} {
		t.Run(cost, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BCRYPT_COST", cost)

			_, err := Load()
			assert.NoError(t, err)
		})
	}
}
