package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

func entry(id, queryKey, courseID string, expiresAt time.Time) *domain.WebSearchEntry {
	now := time.Now().UTC()
	return &domain.WebSearchEntry{
		ID:         id,
		QueryKey:   queryKey,
		CourseID:   courseID,
		Results:    []domain.WebResult{{Title: "r", URL: "https://example.org", Score: 0.8}},
		FetchedAt:  now,
		ExpiresAt:  expiresAt,
		LastUsedAt: now,
	}
}

func TestCacheStore_GetMissingReturnsNotFound(t *testing.T) {
	store := NewCacheStore()

	_, err := store.Get(context.Background(), "missing", "course-1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCacheStore_UpsertAndGet(t *testing.T) {
	store := NewCacheStore()
	ctx := context.Background()
	future := time.Now().UTC().Add(time.Hour)

	require.NoError(t, store.Upsert(ctx, entry("e1", "qk", "course-1", future)))

	got, err := store.Get(ctx, "qk", "course-1")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	require.Len(t, got.Results, 1)
}

func TestCacheStore_GetReturnsCopy(t *testing.T) {
	store := NewCacheStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, entry("e1", "qk", "course-1", time.Now().Add(time.Hour))))

	got, err := store.Get(ctx, "qk", "course-1")
	require.NoError(t, err)
	got.HitCount = 99

	again, err := store.Get(ctx, "qk", "course-1")
	require.NoError(t, err)
	assert.Zero(t, again.HitCount)
}

func TestCacheStore_ScopesByCourse(t *testing.T) {
	store := NewCacheStore()
	ctx := context.Background()
	future := time.Now().UTC().Add(time.Hour)

	require.NoError(t, store.Upsert(ctx, entry("e1", "qk", "course-1", future)))
	require.NoError(t, store.Upsert(ctx, entry("e2", "qk", "course-2", future)))

	got, err := store.Get(ctx, "qk", "course-2")
	require.NoError(t, err)
	assert.Equal(t, "e2", got.ID)
}

func TestCacheStore_TouchIncrementsHitCount(t *testing.T) {
	store := NewCacheStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, entry("e1", "qk", "course-1", time.Now().Add(time.Hour))))
	require.NoError(t, store.Touch(ctx, "e1"))

	got, err := store.Get(ctx, "qk", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.HitCount)
}

func TestCacheStore_TouchMissingReturnsNotFound(t *testing.T) {
	store := NewCacheStore()

	assert.ErrorIs(t, store.Touch(context.Background(), "missing"), domain.ErrNotFound)
}

func TestCacheStore_DeleteExpiredSweepsOnlyStale(t *testing.T) {
	store := NewCacheStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Upsert(ctx, entry("stale", "qk-stale", "", now.Add(-time.Minute))))
	require.NoError(t, store.Upsert(ctx, entry("fresh", "qk-fresh", "", now.Add(time.Minute))))

	deleted, err := store.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = store.Get(ctx, "qk-stale", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(ctx, "qk-fresh", "")
	assert.NoError(t, err)
}

func TestCacheStore_Invalidate(t *testing.T) {
	store := NewCacheStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, entry("e1", "qk", "course-1", time.Now().Add(time.Hour))))
	require.NoError(t, store.Invalidate(ctx, "qk", "course-1"))

	_, err := store.Get(ctx, "qk", "course-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
