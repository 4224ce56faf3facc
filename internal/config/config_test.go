package config_test

import (
	"testing"

	"app/internal/config"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BRAINTREE_MERCHANT_ID", "mid")
	t.Setenv("BRAINTREE_PUBLIC_KEY", "pub")
	t.Setenv("BRAINTREE_PRIVATE_KEY", "priv")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sandbox", cfg.BraintreeEnv)
	//未設定はSecure=true
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_CookieSecureFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_CookieSecureGarbageFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_JWTSecretRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}
