package memory

import (
	"context"
	"errors"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/trials-agent/llm"
	"go.uber.org/zap"
)

// ConversationManager handles conversation-related operations
type ConversationManager struct {
	store   Store
	maxMsgs int
}

// NewConversationManager creates a new conversation manager
func NewConversationManager(store Store, maxMsgs int) *ConversationManager {
	return &ConversationManager{
		store:   store,
		maxMsgs: maxMsgs,
	}
}

// LoadSession loads the saved state for a session, or a fresh state when none exists.
func (cm *ConversationManager) LoadSession(ctx context.Context, sessionID string) *ConversationState {
	if cm.store == nil {
		return NewConversationState(sessionID)
	}

	state, err := cm.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			logger.Error("Failed to find session", zap.String("sessionId", sessionID), zap.Error(err))
		}
		return NewConversationState(sessionID) // start fresh rather than fail the turn
	}

	if state.ID == "" {
		state.ID = sessionID
	}
	return state
}

// SaveSession saves the conversation state for a session
func (cm *ConversationManager) SaveSession(ctx context.Context, state *ConversationState) error {
	if cm.store == nil {
		return nil
	}

	// Trim messages to respect max session limit
	state.Messages = cm.trimForSession(state.Messages)

	return cm.store.Save(ctx, state)
}

// trimForSession keeps the last maxMsgs user messages and every assistant
// message that follows the oldest of them.
func (cm *ConversationManager) trimForSession(msgs []llm.Message) []llm.Message {
	if cm.maxMsgs <= 0 || len(msgs) == 0 {
		return []llm.Message{}
	}

	usersSeen := 0
	start := 0 // keep all if there are no more than maxMsgs user messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == llm.RoleUser {
			usersSeen++
			if usersSeen == cm.maxMsgs {
				start = i
				break
			}
		}
	}

	return msgs[start:]
}

// GetMaxMessages returns the maximum number of user messages kept in a session
func (cm *ConversationManager) GetMaxMessages() int {
	return cm.maxMsgs
}

// SetMaxMessages sets the maximum number of user messages kept in a session
func (cm *ConversationManager) SetMaxMessages(max int) {
	cm.maxMsgs = max
}
