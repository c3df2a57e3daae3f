package driven

import (
	"context"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

// CacheStore persists web search cache entries keyed by
// (query key, course scope). Implementations must allow sweeps to run
// concurrently with reads and writes.
type CacheStore interface {
	// Get returns the entry for the key, or domain.ErrNotFound.
	// Expiry is the caller's concern; Get returns stale entries.
	Get(ctx context.Context, queryKey, courseID string) (*domain.WebSearchEntry, error)

	// Upsert inserts or replaces the entry for its
	// (QueryKey, CourseID) pair.
	Upsert(ctx context.Context, entry *domain.WebSearchEntry) error

	// Touch increments the entry's hit count and refreshes its
	// last-used time.
	Touch(ctx context.Context, id string) error

	// DeleteExpired removes all entries with ExpiresAt before now and
	// returns the number deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)

	// Invalidate removes the entry for the key regardless of expiry.
	Invalidate(ctx context.Context, queryKey, courseID string) error
}
