package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/memory"
	"github.com/SaiNageswarS/trials-agent/prompts"
	"github.com/SaiNageswarS/trials-agent/trials"
)

const (
	DeclineMessage   = "This is not a valid question related to clinical trials. Please ask something else."
	NoResultsMessage = "I could not find any clinical trials related to your question. Please try asking something else."
)

// Synthesizer composes the reply for a turn and appends it to the conversation.
type Synthesizer struct {
	client    llm.LLMClient
	maxTokens int
}

func NewSynthesizer(client llm.LLMClient, maxTokens int) *Synthesizer {
	return &Synthesizer{client: client, maxTokens: maxTokens}
}

// Answer declines invalid requests, reports when no trial was selected, and
// otherwise streams an answer grounded on the selected trials through onFragment.
func (s *Synthesizer) Answer(ctx context.Context, state *memory.ConversationState, onFragment func(chunk string) error) (string, error) {
	if state.IsValidRequest != memory.ValidityValid {
		return s.fixed(state, DeclineMessage, onFragment)
	}

	selected := state.TopTrials()
	if len(state.RetrievedTrials) == 0 || len(state.TopRerankedIDs) == 0 || len(selected) == 0 {
		return s.fixed(state, NoResultsMessage, onFragment)
	}

	systemPrompt, err := prompts.RenderAnswerSystemPrompt(groundingContext(selected))
	if err != nil {
		return "", fmt.Errorf("failed to render answer prompt: %w", err)
	}

	var answer strings.Builder
	err = s.client.GenerateInference(ctx, state.Messages,
		func(chunk string) error {
			answer.WriteString(chunk)
			return onFragment(chunk)
		},
		llm.WithSystemPrompt(systemPrompt),
		llm.WithMaxTokens(s.maxTokens),
		llm.WithTemperature(0.7),
		llm.WithStreaming(true),
	)
	if err != nil {
		return "", fmt.Errorf("answer inference failed: %w", err)
	}

	state.AddAssistantMessage(answer.String())
	return answer.String(), nil
}

func (s *Synthesizer) fixed(state *memory.ConversationState, message string, onFragment func(chunk string) error) (string, error) {
	if err := onFragment(message); err != nil {
		return "", err
	}
	state.AddAssistantMessage(message)
	return message, nil
}

func groundingContext(selected []trials.Trial) string {
	blocks := make([]string, 0, len(selected))
	for _, t := range selected {
		blocks = append(blocks, t.Headline()+"\n"+string(t.Results))
	}
	return strings.Join(blocks, "\n")
}
