package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// messageStore implements driven.MessageStore.
type messageStore struct {
	store *Store
}

var _ driven.MessageStore = (*messageStore)(nil)

// Append stores a message at the end of its session history.
func (m *messageStore) Append(ctx context.Context, msg *domain.Message) error {
	sourcesJSON := jsonNull
	if msg.Sources != nil {
		data, err := json.Marshal(msg.Sources)
		if err != nil {
			return fmt.Errorf("marshalling sources: %w", err)
		}
		sourcesJSON = string(data)
	}

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := m.store.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, session_id, role, content, sources, used_web, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.SessionID, msg.Role, msg.Content, sourcesJSON, msg.UsedWebSearch, msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving message: %w", err)
	}
	return nil
}

// Recent returns up to limit messages for the session in chronological
// order.
func (m *messageStore) Recent(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	// Fetch the newest rows, then reverse into chronological order.
	rows, err := m.store.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, sources, used_web, created_at
		FROM chat_messages WHERE session_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var sourcesJSON string
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content,
			&sourcesJSON, &msg.UsedWebSearch, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		if sourcesJSON != jsonNull {
			if err := json.Unmarshal([]byte(sourcesJSON), &msg.Sources); err != nil {
				return nil, fmt.Errorf("unmarshaling sources: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ClearSession removes all messages for a session.
func (m *messageStore) ClearSession(ctx context.Context, sessionID string) error {
	_, err := m.store.db.ExecContext(ctx, "DELETE FROM chat_messages WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
