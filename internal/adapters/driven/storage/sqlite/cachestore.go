package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// cacheStore implements driven.CacheStore.
type cacheStore struct {
	store *Store
}

var _ driven.CacheStore = (*cacheStore)(nil)

// Get returns the entry for the key, or domain.ErrNotFound. Expiry is
// the caller's concern; stale entries are returned as stored.
func (c *cacheStore) Get(ctx context.Context, queryKey, courseID string) (*domain.WebSearchEntry, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT id, query_key, course_id, results, fetched_at, expires_at, hit_count, last_used_at
		FROM web_search_cache WHERE query_key = ? AND course_id = ?
	`, queryKey, courseID)

	var entry domain.WebSearchEntry
	var resultsJSON string
	if err := row.Scan(&entry.ID, &entry.QueryKey, &entry.CourseID, &resultsJSON,
		&entry.FetchedAt, &entry.ExpiresAt, &entry.HitCount, &entry.LastUsedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning cache entry: %w", err)
	}

	if err := json.Unmarshal([]byte(resultsJSON), &entry.Results); err != nil {
		return nil, fmt.Errorf("unmarshaling cached results: %w", err)
	}

	return &entry, nil
}

// Upsert inserts or replaces the entry for its (QueryKey, CourseID) pair.
func (c *cacheStore) Upsert(ctx context.Context, entry *domain.WebSearchEntry) error {
	resultsJSON, err := json.Marshal(entry.Results)
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO web_search_cache (id, query_key, course_id, results, fetched_at, expires_at, hit_count, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(query_key, course_id) DO UPDATE SET
			id = excluded.id,
			results = excluded.results,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at,
			hit_count = excluded.hit_count,
			last_used_at = excluded.last_used_at
	`, entry.ID, entry.QueryKey, entry.CourseID, string(resultsJSON),
		entry.FetchedAt, entry.ExpiresAt, entry.HitCount, entry.LastUsedAt)

	if err != nil {
		return fmt.Errorf("saving cache entry: %w", err)
	}
	return nil
}

// Touch increments the entry's hit count and refreshes its last-used
// time.
func (c *cacheStore) Touch(ctx context.Context, id string) error {
	res, err := c.store.db.ExecContext(ctx, `
		UPDATE web_search_cache SET hit_count = hit_count + 1, last_used_at = ? WHERE id = ?
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("touching cache entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("touching cache entry: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteExpired removes all entries with ExpiresAt before now.
func (c *cacheStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := c.store.db.ExecContext(ctx, `
		DELETE FROM web_search_cache WHERE expires_at < ?
	`, now)
	if err != nil {
		return 0, fmt.Errorf("deleting expired entries: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting expired entries: %w", err)
	}
	return int(affected), nil
}

// Invalidate removes the entry for the key regardless of expiry.
func (c *cacheStore) Invalidate(ctx context.Context, queryKey, courseID string) error {
	_, err := c.store.db.ExecContext(ctx, `
		DELETE FROM web_search_cache WHERE query_key = ? AND course_id = ?
	`, queryKey, courseID)
	if err != nil {
		return fmt.Errorf("invalidating cache entry: %w", err)
	}
	return nil
}
