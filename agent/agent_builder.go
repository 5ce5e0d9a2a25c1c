package agent

import (
	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/memory"
	"github.com/SaiNageswarS/trials-agent/trials"
)

type AgentBuilder struct {
	config AgentConfig
}

func NewAgentBuilder() *AgentBuilder {
	return &AgentBuilder{
		config: AgentConfig{
			MaxTokens: 2000,
		},
	}
}

func (b *AgentBuilder) WithMiniModel(client llm.LLMClient) *AgentBuilder {
	b.config.MiniModel = client
	return b
}

func (b *AgentBuilder) WithBigModel(client llm.LLMClient) *AgentBuilder {
	b.config.BigModel = client
	return b
}

func (b *AgentBuilder) WithEvidenceProvider(provider EvidenceProvider) *AgentBuilder {
	b.config.Provider = provider
	return b
}

func (b *AgentBuilder) WithMaxTokens(max int) *AgentBuilder {
	b.config.MaxTokens = max
	return b
}

func (b *AgentBuilder) WithConversationManager(cm *memory.ConversationManager) *AgentBuilder {
	b.config.ConversationManager = cm
	return b
}

// Build falls back to whichever model was set when only one is configured,
// and to the public registry when no provider is set.
func (b *AgentBuilder) Build() *Agent {
	if b.config.MiniModel == nil {
		b.config.MiniModel = b.config.BigModel
	}
	if b.config.BigModel == nil {
		b.config.BigModel = b.config.MiniModel
	}
	if b.config.Provider == nil {
		b.config.Provider = trials.NewClient()
	}

	return &Agent{
		config:      b.config,
		validator:   NewValidator(b.config.MiniModel),
		retriever:   NewRetriever(b.config.BigModel, b.config.Provider),
		reranker:    NewReranker(b.config.MiniModel),
		synthesizer: NewSynthesizer(b.config.BigModel, b.config.MaxTokens),
	}
}
