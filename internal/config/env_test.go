package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"TOUCHTREE_MEDIA_DB", "TOUCHTREE_FETCH_TIMEOUT", "TOUCHTREE_LOG_LEVEL", "TOUCHTREE_LOG_FORMAT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "assets.db", cfg.MediaDB)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TOUCHTREE_MEDIA_DB", "/tmp/media.db")
	t.Setenv("TOUCHTREE_FETCH_TIMEOUT", "250ms")
	t.Setenv("TOUCHTREE_LOG_LEVEL", "debug")
	t.Setenv("TOUCHTREE_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/media.db", cfg.MediaDB)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("TOUCHTREE_FETCH_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TOUCHTREE_FETCH_TIMEOUT", "-1s")
	_, err = Load()
	assert.Error(t, err)
}
