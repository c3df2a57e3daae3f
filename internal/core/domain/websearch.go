package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// WebResult is a single result returned by the web search provider.
type WebResult struct {
	// Title is the result headline.
	Title string

	// URL is the source location.
	URL string

	// Snippet is the extracted text content.
	Snippet string

	// Score is the provider's relevance estimate in [0,1].
	Score float64

	// Domain is the source host, e.g. "wikipedia.org".
	Domain string

	// PublishedAt is the publication date when known.
	PublishedAt *time.Time
}

// WebSearchResponse is the provider-level response for one query.
// A missing API key is a configuration condition, not a runtime error:
// the provider returns an empty Results slice with Error set.
type WebSearchResponse struct {
	// Results holds the parsed results, possibly empty.
	Results []WebResult

	// Error describes a provider-side failure, empty on success.
	Error string

	// TookMS is the provider round-trip time in milliseconds.
	TookMS int64
}

// WebSearchEntry is a cached provider response, keyed by the normalised
// query and scope. Entries are upserted idempotently and swept once
// expired.
type WebSearchEntry struct {
	// ID is the unique identifier for the cache entry.
	ID string

	// QueryKey is the normalised, hashed query (see WebQueryKey).
	QueryKey string

	// CourseID scopes the entry; empty for unscoped queries.
	CourseID string

	// Results holds the cached provider results.
	Results []WebResult

	// FetchedAt is when the provider was last contacted.
	FetchedAt time.Time

	// ExpiresAt is when the entry becomes stale. Always after FetchedAt.
	ExpiresAt time.Time

	// HitCount is the number of cache hits served from this entry.
	HitCount int

	// LastUsedAt is when the entry last served a hit.
	LastUsedAt time.Time
}

// Expired reports whether the entry is stale at the given instant.
func (e *WebSearchEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// WebQueryKey normalises a query for cache lookup: lowercased, whitespace
// collapsed, then hashed so arbitrarily long queries produce a fixed-size
// key.
func WebQueryKey(query string) string {
	normalised := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := sha256.Sum256([]byte(normalised))
	return hex.EncodeToString(sum[:])
}
