package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"VOYAGENT_PROVIDER", "VOYAGENT_MODEL", "VOYAGENT_LISTEN",
		"OPENAI_API_KEY", "OPENAI_API_BASE_URL",
		"ANTHROPIC_API_KEY", "COHERE_API_KEY",
		"SERPAPI_API_KEY", "SERPAPI_BASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProvider, cfg.Provider)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, float32(DefaultTemperature), cfg.Temperature)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, DefaultMaxHistory, cfg.MaxHistory)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: anthropic
model: claude-sonnet-4-20250514
listen: ":9090"
max_history: 10
anthropic_api_key: file-key
serpapi_api_key: serp-key
`), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, 10, cfg.MaxHistory)
	assert.Equal(t, "file-key", cfg.LLMAPIKey())
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: gpt-4o\nopenai_api_key: file-key\n"), 0o600))
	t.Setenv("VOYAGENT_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "env-key")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "env-key", cfg.OpenAIAPIKey)
}

func TestValidateMissingLLMKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERPAPI_API_KEY", "serp-key")
	cfg, err := Load("")
	require.NoError(t, err)
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestValidateMissingSearchKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "llm-key")
	cfg, err := Load("")
	require.NoError(t, err)
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERPAPI_API_KEY")
}

func TestValidateUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("VOYAGENT_PROVIDER", "mistral")
	cfg, err := Load("")
	require.NoError(t, err)
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}

func TestLLMAPIKeyPerProvider(t *testing.T) {
	clearEnv(t)
	cfg := &Config{
		Provider:        "cohere",
		OpenAIAPIKey:    "openai-key",
		AnthropicAPIKey: "anthropic-key",
		CohereAPIKey:    "cohere-key",
	}
	assert.Equal(t, "cohere-key", cfg.LLMAPIKey())
	cfg.Provider = "anthropic"
	assert.Equal(t, "anthropic-key", cfg.LLMAPIKey())
	cfg.Provider = "openai"
	assert.Equal(t, "openai-key", cfg.LLMAPIKey())
}
