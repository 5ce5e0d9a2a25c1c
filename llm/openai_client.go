package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient calls the OpenAI chat completion API. Streaming requests forward
// only the delta of each chunk, never an aggregated message.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(model string) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable is not set")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return NewOpenAIClientWithConfig(cfg, model), nil
}

func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAIClient) GetModel() string {
	return c.model
}

func (c *OpenAIClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := applyOptions(defaultSettings(c.model), opts)

	request := openai.ChatCompletionRequest{
		Model:       settings.model,
		Messages:    toOpenAIMessages(withSystem(settings.system, messages)),
		Temperature: openAITemperature(settings.temperature),
		MaxTokens:   settings.maxTokens,
	}

	if !settings.stream {
		resp, err := c.client.CreateChatCompletion(ctx, request)
		if err != nil {
			return fmt.Errorf("error creating chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no choices in response")
		}
		return callback(resp.Choices[0].Message.Content)
	}

	request.Stream = true
	stream, err := c.client.CreateChatCompletionStream(ctx, request)
	if err != nil {
		return fmt.Errorf("error creating chat completion stream: %w", err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading chat completion stream: %w", err)
		}

		for _, choice := range resp.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			if err := callback(choice.Delta.Content); err != nil {
				return err
			}
		}
	}
}

// openAITemperature keeps a zero temperature on the wire; go-openai omits 0.
func openAITemperature(temp float64) float32 {
	if temp == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(temp)
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = openai.ChatMessageRoleUser
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
