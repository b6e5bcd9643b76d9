package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("PORT", "6000")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "testDB")
	t.Setenv("ACCESS_JWT_TOKEN", "legacy-secret")
	t.Setenv("STRIPE_GATEWAY_SK", "sk_test_123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "6000", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "testDB", cfg.Database.Name)
	assert.Equal(t, "legacy-secret", cfg.JWT.SecretKey)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
}

func TestLoad_PrefixedEnvNames(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ACCESS_JWT_TOKEN", "secret")
	t.Setenv("BISTRO_SERVER_METRICS_PORT", "9999")
	t.Setenv("BISTRO_LOG_LEVEL", "debug")
	t.Setenv("BISTRO_CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.MetricsPort)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingSecretKey(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ACCESS_JWT_TOKEN", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingDatabaseURI(t *testing.T) {
	t.Setenv("ACCESS_JWT_TOKEN", "secret")
	t.Setenv("MONGODB_URI", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "resturentDB", cfg.Database.Name)
	assert.Equal(t, time.Hour, cfg.JWT.TokenDuration)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}
