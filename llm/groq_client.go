package llm

import (
	"errors"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient talks to Groq's OpenAI-compatible endpoint.
type GroqClient struct {
	*OpenAIClient
}

func NewGroqClient(model string) (*GroqClient, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GROQ_API_KEY environment variable is not set")
	}

	return newGroqClientWithURL(apiKey, groqBaseURL, model), nil
}

func newGroqClientWithURL(apiKey, baseURL, model string) *GroqClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &GroqClient{OpenAIClient: NewOpenAIClientWithConfig(cfg, model)}
}
