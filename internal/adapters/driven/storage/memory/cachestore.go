// Package memory provides in-memory implementations of the persistence
// ports. Useful for tests and ephemeral deployments where nothing needs
// to survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore is an in-memory implementation of driven.CacheStore.
type CacheStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.WebSearchEntry
}

// NewCacheStore creates a new in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		entries: make(map[string]*domain.WebSearchEntry),
	}
}

// cacheKey joins the query key and course scope.
func cacheKey(queryKey, courseID string) string {
	return queryKey + "|" + courseID
}

// Get returns the entry for the key, or domain.ErrNotFound. Expiry is
// the caller's concern; stale entries are returned as stored.
func (s *CacheStore) Get(_ context.Context, queryKey, courseID string) (*domain.WebSearchEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[cacheKey(queryKey, courseID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *entry
	return &clone, nil
}

// Upsert inserts or replaces the entry for its (QueryKey, CourseID)
// pair.
func (s *CacheStore) Upsert(_ context.Context, entry *domain.WebSearchEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *entry
	s.entries[cacheKey(entry.QueryKey, entry.CourseID)] = &clone
	return nil
}

// Touch increments the entry's hit count and refreshes its last-used
// time.
func (s *CacheStore) Touch(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.ID == id {
			entry.HitCount++
			entry.LastUsedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrNotFound
}

// DeleteExpired removes all entries with ExpiresAt before now.
func (s *CacheStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

// Invalidate removes the entry for the key regardless of expiry.
func (s *CacheStore) Invalidate(_ context.Context, queryKey, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, cacheKey(queryKey, courseID))
	return nil
}
