package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

func TestMessageStore_AppendAndRecent(t *testing.T) {
	store := NewMessageStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, &domain.Message{
			ID:        fmt.Sprintf("m%d", i),
			SessionID: "session-1",
			Role:      domain.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
		}))
	}

	got, err := store.Recent(ctx, "session-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "message 0", got[0].Content)
	assert.Equal(t, "message 2", got[2].Content)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestMessageStore_RecentKeepsNewestWhenLimited(t *testing.T) {
	store := NewMessageStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, &domain.Message{
			ID:        fmt.Sprintf("m%d", i),
			SessionID: "session-1",
			Role:      domain.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
		}))
	}

	got, err := store.Recent(ctx, "session-1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "message 3", got[0].Content)
	assert.Equal(t, "message 4", got[1].Content)
}

func TestMessageStore_SessionsAreIsolated(t *testing.T) {
	store := NewMessageStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &domain.Message{ID: "m1", SessionID: "session-1", Content: "one"}))
	require.NoError(t, store.Append(ctx, &domain.Message{ID: "m2", SessionID: "session-2", Content: "two"}))

	got, err := store.Recent(ctx, "session-2", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "two", got[0].Content)
}

func TestMessageStore_ClearSession(t *testing.T) {
	store := NewMessageStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &domain.Message{ID: "m1", SessionID: "session-1", Content: "one"}))
	require.NoError(t, store.ClearSession(ctx, "session-1"))

	got, err := store.Recent(ctx, "session-1", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
