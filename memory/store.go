package memory

import (
	"context"
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("session not found")

// Store persists conversation state by session ID.
type Store interface {
	// Load returns ErrSessionNotFound when no state was saved under id.
	Load(ctx context.Context, id string) (*ConversationState, error)
	Save(ctx context.Context, state *ConversationState) error
}

type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*ConversationState
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*ConversationState)}
}

func (s *InMemoryStore) Load(ctx context.Context, id string) (*ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return state.Clone(), nil
}

func (s *InMemoryStore) Save(ctx context.Context, state *ConversationState) error {
	if state.ID == "" {
		return errors.New("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[state.ID] = state.Clone()
	return nil
}
