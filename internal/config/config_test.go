package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
}

func TestNewServerConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewServerConfigRejectsBadPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	t.Setenv("PORT", "not-a-number")
	_, err := NewServerConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port out of range")
}

func TestNewUploadConfigDefaults(t *testing.T) {
	t.Setenv("UPLOAD_PARSER_URL", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("UPLOAD_TIMEOUT_SECONDS", "")

	cfg, err := NewUploadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(10<<20), cfg.MaxBytes)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.ParserURL)
}

func TestNewUploadConfigRejectsNonPositiveLimits(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "0")
	_, err := NewUploadConfig()
	assert.Error(t, err)

	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("UPLOAD_TIMEOUT_SECONDS", "-5")
	_, err = NewUploadConfig()
	assert.Error(t, err)
}

func TestNewLLMConfigDefaultModel(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODEL", "")

	cfg := NewLLMConfig()
	assert.Equal(t, "gemini-1.5-flash", cfg.Model)
	assert.Equal(t, "key", cfg.APIKey)
}

func TestNewBillingConfig(t *testing.T) {
	t.Setenv("BILLING_BASE_URL", "https://provider.example")
	t.Setenv("BILLING_CLIENT_ID", "id")
	t.Setenv("BILLING_CLIENT_SECRET", "secret")
	t.Setenv("BILLING_TOKEN_REFRESH_MINUTES", "")
	t.Setenv("BILLING_TIMEOUT_SECONDS", "")

	cfg, err := NewBillingConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled())
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
}

func TestBillingConfigDisabledWhenIncomplete(t *testing.T) {
	t.Setenv("BILLING_BASE_URL", "https://provider.example")
	t.Setenv("BILLING_CLIENT_ID", "")
	t.Setenv("BILLING_CLIENT_SECRET", "")

	cfg, err := NewBillingConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled())
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-secret-of-sixteen-bytes")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfigRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestNewPasswordConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)

	t.Setenv("BCRYPT_COST", "30")
	_, err = NewPasswordConfig()
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 4}

	hash, err := cfg.HashPassword("supersecret")
	require.NoError(t, err)
	assert.True(t, cfg.VerifyPassword("supersecret", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
}
