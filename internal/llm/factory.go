package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates an LLM provider based on configuration. An empty
// provider name returns (nil, nil): LLM stages are disabled and the
// pipeline degrades to deterministic output.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
