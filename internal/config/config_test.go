package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"PORTAL_PRIMARY.ENV":                  "test",
		"PORTAL_SERVER.PORT":                  "8080",
		"PORTAL_SERVER.READ_TIMEOUT":          "10",
		"PORTAL_SERVER.WRITE_TIMEOUT":         "10",
		"PORTAL_SERVER.IDLE_TIMEOUT":          "60",
		"PORTAL_SERVER.CORS_ALLOWED_ORIGINS":  "http://localhost:3000",
		"PORTAL_DATABASE.HOST":                "localhost",
		"PORTAL_DATABASE.PORT":                "5432",
		"PORTAL_DATABASE.USER":                "portal",
		"PORTAL_DATABASE.PASSWORD":            "portal",
		"PORTAL_DATABASE.NAME":                "portal_test",
		"PORTAL_DATABASE.SSL_MODE":            "disable",
		"PORTAL_DATABASE.MAX_OPEN_CONNS":      "10",
		"PORTAL_DATABASE.MAX_IDLE_CONNS":      "5",
		"PORTAL_DATABASE.CONN_MAX_LIFETIME":   "300",
		"PORTAL_DATABASE.CONN_MAX_IDLE_TIME":  "60",
		"PORTAL_REDIS.ADDRESS":                "localhost:6379",
		"PORTAL_AUTH.SECRET_KEY":              "0123456789abcdef0123456789abcdef",
		"PORTAL_AUTH.TOKEN_LIFETIME_MINUTES":  "60",
		"PORTAL_PAYMENT.KEY_ID":               "rzp_test_key",
		"PORTAL_PAYMENT.KEY_SECRET":           "test_key_secret",
		"PORTAL_PAYMENT.WEBHOOK_SECRET":       "test_webhook_secret",
		"PORTAL_PAYMENT.CURRENCY":             "INR",
		"PORTAL_EMAIL.RESEND_API_KEY":         "re_test_key",
		"PORTAL_EMAIL.FROM_NAME":              "StellarHost",
		"PORTAL_EMAIL.FROM_ADDRESS":           "no-reply@stellarhost.example",
	}
	for key, value := range vars {
		t.Setenv(key, value)
	}
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, "INR", cfg.Payment.Currency)
}

func TestLoadObservabilityDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "portal", cfg.Observability.ServiceName)
	assert.Equal(t, "test", cfg.Observability.Environment)
}
