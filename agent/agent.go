package agent

import (
	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/memory"
)

// AgentConfig holds configuration for the agent
type AgentConfig struct {
	// MiniModel validates requests and reranks trials.
	MiniModel llm.LLMClient
	// BigModel extracts registry queries and writes answers.
	BigModel  llm.LLMClient
	Provider  EvidenceProvider
	MaxTokens int

	// Conversation management
	ConversationManager *memory.ConversationManager
}

// Agent runs the validate, retrieve, rerank and answer pipeline for one conversation turn.
type Agent struct {
	config AgentConfig

	validator   *Validator
	retriever   *Retriever
	reranker    *Reranker
	synthesizer *Synthesizer
}
