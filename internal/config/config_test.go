package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "gemini", cfg.LLM.DefaultProvider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.DefaultModel)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.InDelta(t, 0.95, cfg.LLM.TopP, 0.001)
	assert.Equal(t, 40, cfg.LLM.TopK)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)

	assert.Equal(t, "prompts", cfg.Prompts.Dir)
	assert.Equal(t, "production", cfg.Prompts.Alias)
	assert.True(t, cfg.Prompts.AutoPromote)
	assert.Equal(t, 5*time.Minute, cfg.Prompts.CacheTTL)

	assert.Equal(t, "env", cfg.Secrets.Backend)
	assert.Equal(t, "career-companion", cfg.Track.Service)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("PROMPT_AUTO_PROMOTE", "false")
	t.Setenv("PROMPT_ALIAS", "staging")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.001)
	assert.False(t, cfg.Prompts.AutoPromote)
	assert.Equal(t, "staging", cfg.Prompts.Alias)
}

func TestLoadRejectsBadInt(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	cfg.Database.URL = "postgres://localhost/companion"
	assert.NoError(t, cfg.Validate())
}
