package driven

import (
	"context"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

// MessageStore persists chat messages per session.
type MessageStore interface {
	// Append stores a message at the end of its session history.
	Append(ctx context.Context, msg *domain.Message) error

	// Recent returns up to limit messages for the session in
	// chronological order.
	Recent(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)

	// ClearSession removes all messages for a session.
	ClearSession(ctx context.Context, sessionID string) error
}
