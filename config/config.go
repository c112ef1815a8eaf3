// Package config loads the service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither file nor environment set a value.
const (
	DefaultProvider    = "openai"
	DefaultModel       = "gpt-4o"
	DefaultListen      = ":8080"
	DefaultTemperature = 0.5
	DefaultMaxTokens   = 1000
	DefaultMaxHistory  = 50
)

// Config is the full service configuration.
type Config struct {
	// Provider is the LLM provider, one of openai, anthropic or cohere.
	Provider string `yaml:"provider"`
	// Model is the model name passed to the provider.
	Model string `yaml:"model"`
	// Temperature for response generation.
	Temperature float32 `yaml:"temperature"`
	// MaxTokens is the response token limit.
	MaxTokens int `yaml:"max_tokens"`
	// Listen is the HTTP listen address of the chat UI.
	Listen string `yaml:"listen"`
	// MaxHistory caps the per-session transcript length, zero is unbounded.
	MaxHistory int `yaml:"max_history"`

	// OpenAIAPIKey etc. are the provider credentials. The key matching the
	// configured provider is required.
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	OpenAIBaseURL   string `yaml:"openai_base_url"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	CohereAPIKey    string `yaml:"cohere_api_key"`

	// SerpAPIKey is the search provider credential, always required.
	SerpAPIKey string `yaml:"serpapi_api_key"`
	// SerpAPIBaseURL overrides the search endpoint, mainly for tests.
	SerpAPIBaseURL string `yaml:"serpapi_base_url"`
}

// Load reads the configuration file at path when it exists, then applies
// environment overrides and defaults. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Provider:    DefaultProvider,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Listen:      DefaultListen,
		MaxHistory:  DefaultMaxHistory,
	}
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(bs, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setenv(&c.Provider, "VOYAGENT_PROVIDER")
	setenv(&c.Model, "VOYAGENT_MODEL")
	setenv(&c.Listen, "VOYAGENT_LISTEN")
	setenv(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setenv(&c.OpenAIBaseURL, "OPENAI_API_BASE_URL")
	setenv(&c.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setenv(&c.CohereAPIKey, "COHERE_API_KEY")
	setenv(&c.SerpAPIKey, "SERPAPI_API_KEY")
	setenv(&c.SerpAPIBaseURL, "SERPAPI_BASE_URL")
}

func setenv(dist *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dist = v
	}
}

// LLMAPIKey returns the credential for the configured provider.
func (c *Config) LLMAPIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "cohere":
		return c.CohereAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

// Validate fails fast on missing credentials so a misconfigured service
// refuses to start instead of failing on the first chat turn.
func (c *Config) Validate() error {
	switch c.Provider {
	case "openai", "anthropic", "cohere":
	default:
		return fmt.Errorf("unknown llm provider %q", c.Provider)
	}
	if c.LLMAPIKey() == "" {
		return fmt.Errorf("missing API key for llm provider %s: set %s", c.Provider, providerEnvName(c.Provider))
	}
	if c.SerpAPIKey == "" {
		return errors.New("missing search provider API key: set SERPAPI_API_KEY")
	}
	return nil
}

func providerEnvName(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "cohere":
		return "COHERE_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}
