package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SESSION_SECRET", "s3cret")

	_, err := Load()

	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()

	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("GEMINI_INLINE_IMAGE_MODEL", "")
	t.Setenv("GEMINI_IMAGEN_MODEL", "")
	t.Setenv("SHARE_TOKEN_TTL", "")
	t.Setenv("METRICS_ENABLED", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.LLM.InlineModel)
	assert.Equal(t, "imagen-4.0-generate-001", cfg.LLM.ImagenModel)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.ShareTokenTTL)
	assert.True(t, cfg.Observability.MetricsEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHARE_TOKEN_TTL", "48h")
	t.Setenv("RATE_LIMIT_PER_SECOND", "50")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 48*time.Hour, cfg.Auth.ShareTokenTTL)
	assert.Equal(t, 50, cfg.Server.RateLimitPerSecond)
}

func TestDatabaseDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "canvas",
		Password: "pw",
		Name:     "loci_canvas",
		SSLMode:  "require",
	}.DSN()

	assert.Equal(t, "postgres://canvas:pw@db.internal:5433/loci_canvas?sslmode=require", dsn)
}
