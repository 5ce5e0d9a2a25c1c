package memory

import (
	"slices"

	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/trials"
)

// Validity is the outcome of request validation for the current turn.
type Validity int

const (
	ValidityUnknown Validity = iota
	ValidityValid
	ValidityInvalid
)

func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "valid"
	case ValidityInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

func ValidityOf(valid bool) Validity {
	if valid {
		return ValidityValid
	}
	return ValidityInvalid
}

// ConversationState is everything carried between turns of one conversation.
// A nil RetrievedTrials or TopRerankedIDs means the stage never produced a result.
type ConversationState struct {
	ID              string         `json:"id" bson:"_id"`
	Messages        []llm.Message  `json:"messages" bson:"messages"`
	IsValidRequest  Validity       `json:"is_valid_request" bson:"is_valid_request"`
	RetrievedTrials []trials.Trial `json:"retrieved_trials" bson:"retrieved_trials"`
	TopRerankedIDs  []string       `json:"top_reranked_ids" bson:"top_reranked_ids"`
}

func NewConversationState(id string) *ConversationState {
	return &ConversationState{ID: id}
}

func (m *ConversationState) AddUserMessage(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: llm.RoleUser, Content: content})
}

func (m *ConversationState) AddAssistantMessage(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: llm.RoleAssistant, Content: content})
}

// LatestUserMessage returns the content of the most recent user message.
func (m *ConversationState) LatestUserMessage() (string, bool) {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Role == llm.RoleUser {
			return m.Messages[i].Content, true
		}
	}
	return "", false
}

// HasRetrieval reports whether a retrieval has run in this conversation.
func (m *ConversationState) HasRetrieval() bool {
	return m.RetrievedTrials != nil
}

// TopTrials returns the retrieved trials selected by reranking, in retrieval order.
func (m *ConversationState) TopTrials() []trials.Trial {
	var top []trials.Trial
	for _, t := range m.RetrievedTrials {
		if slices.Contains(m.TopRerankedIDs, t.ID) {
			top = append(top, t)
		}
	}
	return top
}

// Clone returns a deep copy; nil slices stay nil.
func (m *ConversationState) Clone() *ConversationState {
	out := &ConversationState{
		ID:             m.ID,
		IsValidRequest: m.IsValidRequest,
		Messages:       slices.Clone(m.Messages),
		TopRerankedIDs: slices.Clone(m.TopRerankedIDs),
	}

	if m.RetrievedTrials != nil {
		out.RetrievedTrials = make([]trials.Trial, len(m.RetrievedTrials))
		for i, t := range m.RetrievedTrials {
			t.Results = slices.Clone(t.Results)
			out.RetrievedTrials[i] = t
		}
	}

	return out
}
