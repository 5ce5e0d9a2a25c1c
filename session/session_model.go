package session

import (
	"time"

	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/memory"
	"github.com/SaiNageswarS/trials-agent/trials"
	"github.com/google/uuid"
)

type SessionModel struct {
	ID              string          `bson:"_id"`
	Messages        []llm.Message   `bson:"messages"`
	IsValidRequest  memory.Validity `bson:"isValidRequest"`
	RetrievedTrials []trials.Trial  `bson:"retrievedTrials"`
	TopRerankedIDs  []string        `bson:"topRerankedIds"`
	UpdatedAt       time.Time       `bson:"updatedAt"`
}

func (m SessionModel) Id() string {
	return m.ID
}

func (m SessionModel) CollectionName() string {
	return "sessions"
}

func NewSessionID() string {
	return uuid.NewString()
}

func toSessionModel(state *memory.ConversationState) SessionModel {
	return SessionModel{
		ID:              state.ID,
		Messages:        state.Messages,
		IsValidRequest:  state.IsValidRequest,
		RetrievedTrials: state.RetrievedTrials,
		TopRerankedIDs:  state.TopRerankedIDs,
		UpdatedAt:       time.Now().UTC(),
	}
}

func (m SessionModel) toState() *memory.ConversationState {
	return &memory.ConversationState{
		ID:              m.ID,
		Messages:        m.Messages,
		IsValidRequest:  m.IsValidRequest,
		RetrievedTrials: m.RetrievedTrials,
		TopRerankedIDs:  m.TopRerankedIDs,
	}
}
