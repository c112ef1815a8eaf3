package agents

import (
	"fmt"

	"github.com/bububa/instructor-go/pkg/instructor"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"
	cohereOption "github.com/cohere-ai/cohere-go/v2/option"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ClientConfig carries the credentials needed to build an LLM client.
type ClientConfig struct {
	// Provider is one of openai, anthropic or cohere.
	Provider string
	APIKey   string
	// BaseURL overrides the provider endpoint, mainly for tests and proxies.
	BaseURL string
}

// NewInstructor builds a structured-output LLM client for the configured
// provider.
func NewInstructor(cfg ClientConfig) (instructor.Instructor, error) {
	switch instructor.Provider(cfg.Provider) {
	case instructor.ProviderAnthropic:
		opts := make([]anthropic.ClientOption, 0, 1)
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		clt := anthropic.NewClient(cfg.APIKey, opts...)
		return instructor.FromAnthropic(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation()), nil
	case instructor.ProviderCohere:
		opts := make([]cohereOption.RequestOption, 0, 2)
		opts = append(opts, cohereOption.WithToken(cfg.APIKey))
		if cfg.BaseURL != "" {
			opts = append(opts, cohereOption.WithBaseURL(cfg.BaseURL))
		}
		clt := cohereClient.NewClient(opts...)
		return instructor.FromCohere(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation()), nil
	case instructor.ProviderOpenAI, "":
		c := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			c.BaseURL = cfg.BaseURL
		}
		clt := openai.NewClientWithConfig(c)
		return instructor.FromOpenAI(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation()), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
