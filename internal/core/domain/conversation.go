package domain

import "time"

// Turn roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation window.
type Turn struct {
	// Role is user, assistant or system.
	Role string

	// Content is the message text.
	Content string

	// Timestamp is when the turn was recorded.
	Timestamp time.Time

	// Summary marks a synthesized summary turn produced by window
	// collapse. At most one summary turn exists per window.
	Summary bool
}

// Message is a persisted chat message within a session.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// SessionID links to the owning chat session.
	SessionID string

	// Role is user or assistant.
	Role string

	// Content is the message text.
	Content string

	// Sources records the evidence attributed to an assistant message.
	Sources []ContextSource

	// UsedWebSearch reports whether web evidence informed the message.
	UsedWebSearch bool

	// CreatedAt is when the message was stored.
	CreatedAt time.Time
}
