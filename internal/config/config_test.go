package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, "https://api.trekmate.app/v1", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.RedisAddr)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("API_BASE_URL", "https://staging.example.com")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, "https://staging.example.com", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestInvalidEnvRejected(t *testing.T) {
	t.Setenv("ENV", "staging")
	_, err := New()
	assert.Error(t, err)
}

func TestEmptyBaseURLRejected(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	_, err := New()
	assert.Error(t, err)
}

func TestNonPositiveTimeoutRejected(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "0s")
	_, err := New()
	assert.Error(t, err)
}
