package llm

import "fmt"

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGroq      = "groq"
	ProviderOllama    = "ollama"
)

// NewClient builds the client for a configured provider name.
func NewClient(provider, model string) (LLMClient, error) {
	switch provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(model)
	case ProviderAnthropic:
		return NewAnthropicClient(model)
	case ProviderGroq:
		return NewGroqClient(model)
	case ProviderOllama:
		return NewOllamaClient(model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
