package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "./database.db", cfg.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.ExampleFallback)
	assert.Equal(t, "Usuario Petu", cfg.DefaultHostName)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.IsProduction())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("PETU_STORAGE", " Postgres ")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "events")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173,https://petu.app")
	t.Setenv("EXAMPLE_FALLBACK", "true")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_CACHE_TTL", "1m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password=postgres dbname=events sslmode=disable", cfg.Postgres.DSN())
	assert.Equal(t, []string{"http://localhost:5173", "https://petu.app"}, cfg.AllowedOrigins)
	assert.True(t, cfg.ExampleFallback)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestParseDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@hosted.example.com:6543/postgres")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@hosted.example.com:6543/postgres", cfg.Postgres.DSN())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown storage", key: "PETU_STORAGE", val: "mongo"},
		{name: "bcrypt cost too low", key: "BCRYPT_COST", val: "2"},
		{name: "bad log level", key: "LOG_LEVEL", val: "loud"},
		{name: "non-positive token ttl", key: "TOKEN_TTL", val: "0s"},
		{name: "malformed duration", key: "TOKEN_TTL", val: "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestDefaultSecretAllowedOutsideProduction(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
}
