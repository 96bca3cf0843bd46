package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"GEMINI_API_KEY", "ABSURD_GEMINI_MODEL", "ABSURD_SAVE_DIR", "ABSURD_HTTP_ADDR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ".saves", cfg.SaveDir)
	assert.Equal(t, ":3001", cfg.HTTPAddr)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Error(t, cfg.RequireGeminiKey())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("ABSURD_SAVE_DIR", "/tmp/saves")
	t.Setenv("ABSURD_DB_PATH", "/tmp/absurd.db")
	t.Setenv("ABSURD_CONTENT", "story.yaml")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/saves", cfg.SaveDir)
	assert.Equal(t, "/tmp/absurd.db", cfg.DBPath)
	assert.Equal(t, "story.yaml", cfg.ContentPath)
	assert.NoError(t, cfg.RequireGeminiKey())
}
