package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// Ensure MessageStore implements the interface.
var _ driven.MessageStore = (*MessageStore)(nil)

// MessageStore is an in-memory implementation of driven.MessageStore.
// Messages are held per session in append order.
type MessageStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Message
}

// NewMessageStore creates a new in-memory message store.
func NewMessageStore() *MessageStore {
	return &MessageStore{
		sessions: make(map[string][]domain.Message),
	}
}

// Append stores a message at the end of its session history.
func (s *MessageStore) Append(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *msg
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.sessions[msg.SessionID] = append(s.sessions[msg.SessionID], stored)
	return nil
}

// Recent returns up to limit messages for the session in chronological
// order.
func (s *MessageStore) Recent(_ context.Context, sessionID string, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages := s.sessions[sessionID]
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	result := make([]domain.Message, len(messages))
	copy(result, messages)
	return result, nil
}

// ClearSession removes all messages for a session.
func (s *MessageStore) ClearSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
