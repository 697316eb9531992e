package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "token-secret")
	t.Setenv("HMAC_VERIFICATION_CODE_SECRET", "hmac-secret")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 8*time.Hour, cfg.AccessTTL)
	assert.Equal(t, 5*time.Minute, cfg.CodeTTL)
	assert.Equal(t, "token-secret", cfg.TokenSecret)
	assert.Equal(t, "hmac-secret", cfg.HMACSecret)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoad_MissingSecretsIsFatal(t *testing.T) {
	// secrets absent -> the process must refuse to configure itself
	t.Setenv("TOKEN_SECRET", "x")
	os.Unsetenv("TOKEN_SECRET")
	os.Unsetenv("HMAC_VERIFICATION_CODE_SECRET")

	_, err := Load(context.Background())
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "token-secret")
	t.Setenv("HMAC_VERIFICATION_CODE_SECRET", "hmac-secret")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("ACCESS_TTL", "2h")
	t.Setenv("SMTP_HOST", "mail.internal")
	t.Setenv("SMTP_TLS", "true")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Hour, cfg.AccessTTL)
	assert.Equal(t, "mail.internal", cfg.SMTP.Host)
	assert.True(t, cfg.SMTP.TLS)
}
