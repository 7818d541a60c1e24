package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "local", cfg.ObjectStoreType)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, time.Duration(0), cfg.JWTExpiresIn)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 10*time.Second, cfg.ExtractTimeout)
	assert.True(t, cfg.LLMSimulateLatency)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowOrigin)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("JWT_SECRET", " s3cret ")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LLM_SIMULATE_LATENCY", "false")
	t.Setenv("EXTRACT_TIMEOUT", "3s")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "s3", cfg.ObjectStoreType)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigin)
	assert.False(t, cfg.LLMSimulateLatency)
	assert.Equal(t, 3*time.Second, cfg.ExtractTimeout)
}

func TestParseRequiresSecretOutsideDev(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
