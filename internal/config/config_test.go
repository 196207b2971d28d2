package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5174"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenDuration())
	assert.Equal(t, "admin123", cfg.Auth.Users["admin"])
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout())
	assert.Equal(t, 24000, cfg.LLM.MaxInputTokens)
	assert.Equal(t, int64(16*1024*1024), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, 2*time.Hour, cfg.Tasks.TaskTTL())
	assert.Equal(t, 4096, cfg.Tasks.MaxEntries)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bidwriter.yaml")
	content := `
server:
  port: 8080
llm:
  api_key: test-key
  model: deepseek-reasoner
tasks:
  ttl_minutes: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.Equal(t, "deepseek-reasoner", cfg.LLM.Model)
	assert.Equal(t, 5*time.Minute, cfg.Tasks.TaskTTL())
	// Untouched keys keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 5000},
			Auth:   AuthConfig{JWTSecret: "s", AccessTokenTTL: 30},
			LLM:    LLMConfig{BaseURL: "https://api.deepseek.com/v1"},
			Tasks:  TasksConfig{MaxEntries: 10},
		}
	}
	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Auth.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Auth.AccessTokenTTL = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.LLM.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Tasks.MaxEntries = 0
	assert.Error(t, cfg.Validate())
}

func TestAddr(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 5000}
	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
}
