package driven

import (
	"context"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

// WebSearchProvider answers web queries, typically via a search-backed
// LLM API. This is an optional service - when nil, hybrid search is
// course-only.
//
// A missing API key is a configuration condition, not a runtime error:
// implementations return an empty-results response with the Error field
// set instead of a Go error.
type WebSearchProvider interface {
	// Search runs one web query. recency filters results by age
	// ("day", "week", "month", "year"); empty means no filter.
	Search(ctx context.Context, query string, limit int, recency string) (domain.WebSearchResponse, error)

	// Close releases resources.
	Close() error
}
