package localhake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data/site.db", cfg.DatabasePath)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60, cfg.LinkAPIRate)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOCALHAKE_ADDR", ":8080")
	t.Setenv("LOCALHAKE_DATABASE_PATH", "/tmp/preview.db")
	t.Setenv("LOCALHAKE_CACHE_TTL", "30s")
	t.Setenv("LOCALHAKE_LOG_LEVEL", "debug")
	t.Setenv("LOCALHAKE_LINK_API_RATE", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/tmp/preview.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.LinkAPIRate)
}

func TestConfigSetDefaultsKeepsValues(t *testing.T) {
	cfg := Config{Addr: ":9000", CacheTTL: time.Second}
	cfg.setDefaults()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, time.Second, cfg.CacheTTL)
	assert.Equal(t, "data/site.db", cfg.DatabasePath)
	assert.Equal(t, 60, cfg.LinkAPIRate)
}
