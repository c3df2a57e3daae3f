package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
)

// WebSearchConfig configures the web search cache service.
type WebSearchConfig struct {
	// CacheTTL is how long cached results stay fresh.
	CacheTTL time.Duration

	// RateLimit is the provider request budget per rolling minute.
	RateLimit int

	// ResultLimit is the maximum results requested per query.
	ResultLimit int

	// Recency is the provider recency filter ("day", "week", ...).
	Recency string
}

// withDefaults fills zero values with the deployment defaults.
func (c WebSearchConfig) withDefaults() WebSearchConfig {
	if c.CacheTTL == 0 {
		c.CacheTTL = domain.DefaultWebCacheTTL
	}
	if c.RateLimit <= 0 {
		c.RateLimit = domain.DefaultWebRateLimit
	}
	if c.ResultLimit <= 0 {
		c.ResultLimit = domain.DefaultWebResultLimit
	}
	if c.Recency == "" {
		c.Recency = domain.DefaultWebSearchRecency
	}
	return c
}

// WebSearchOutcome is the result of one cached web search. Warning
// carries a best-effort failure (such as a cache write error) that did
// not fail the search itself, so callers and tests can observe
// "failed silently but correctly".
type WebSearchOutcome struct {
	// Results holds the web results, possibly empty.
	Results []domain.WebResult

	// Cached reports whether the results came from the cache.
	Cached bool

	// ProviderError is the provider's own error string (for example a
	// missing API key), empty on success.
	ProviderError string

	// Warning records a swallowed best-effort failure.
	Warning string
}

// WebSearchService wraps the external web search provider with a
// TTL-bounded cache and a token-bucket rate limit. Cache writes are
// best-effort: a caching failure never fails the surrounding search.
type WebSearchService struct {
	provider driven.WebSearchProvider
	cache    driven.CacheStore
	limiter  *rate.Limiter
	cfg      WebSearchConfig

	// now is the clock, overridable in tests.
	now func() time.Time
}

// NewWebSearchService creates a web search service. The limiter refills
// the full request budget over each rolling 60-second window; when the
// budget is exhausted a search suspends until tokens return rather than
// failing.
func NewWebSearchService(provider driven.WebSearchProvider, cache driven.CacheStore, cfg WebSearchConfig) *WebSearchService {
	cfg = cfg.withDefaults()
	return &WebSearchService{
		provider: provider,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Limit(float64(cfg.RateLimit)/60.0), cfg.RateLimit),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Search runs one web query, serving from the cache when possible.
// On a hit within the TTL the provider is not contacted and the entry's
// hit count is refreshed. On a miss the call waits for rate-limiter
// capacity, queries the provider and caches non-empty results.
func (s *WebSearchService) Search(ctx context.Context, query, courseID string, useCache bool) (WebSearchOutcome, error) {
	logger.Section("Web Search")
	logger.Debug("Query: %q, course: %s, cache: %t", query, courseID, useCache)

	if s.provider == nil {
		return WebSearchOutcome{ProviderError: "web search provider not configured"}, nil
	}

	queryKey := domain.WebQueryKey(query)

	if useCache && s.cache != nil {
		if outcome, ok := s.lookupCache(ctx, queryKey, courseID); ok {
			return outcome, nil
		}
	}

	// Suspend until the rolling-window budget allows another provider
	// call. Cancellation propagates as an error.
	if err := s.limiter.Wait(ctx); err != nil {
		return WebSearchOutcome{}, fmt.Errorf("rate limiter wait: %w", err)
	}

	response, err := s.provider.Search(ctx, query, s.cfg.ResultLimit, s.cfg.Recency)
	if err != nil {
		return WebSearchOutcome{}, fmt.Errorf("web provider: %w", err)
	}
	if response.Error != "" {
		logger.Warn("Provider reported: %s", response.Error)
	}
	logger.Info("Provider returned %d results in %dms", len(response.Results), response.TookMS)

	outcome := WebSearchOutcome{
		Results:       response.Results,
		ProviderError: response.Error,
	}

	if useCache && s.cache != nil && len(response.Results) > 0 {
		if warn := s.writeCache(ctx, queryKey, courseID, response.Results); warn != "" {
			outcome.Warning = warn
		}
	}

	return outcome, nil
}

// lookupCache returns a cached outcome when a fresh entry exists.
func (s *WebSearchService) lookupCache(ctx context.Context, queryKey, courseID string) (WebSearchOutcome, bool) {
	entry, err := s.cache.Get(ctx, queryKey, courseID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Cache lookup failed: %v", err)
		}
		return WebSearchOutcome{}, false
	}
	if entry.Expired(s.now()) {
		logger.Debug("Cache entry expired at %s", entry.ExpiresAt.Format(time.RFC3339))
		return WebSearchOutcome{}, false
	}

	outcome := WebSearchOutcome{Results: entry.Results, Cached: true}
	if err := s.cache.Touch(ctx, entry.ID); err != nil {
		logger.Warn("Cache touch failed: %v", err)
		outcome.Warning = fmt.Sprintf("cache touch failed: %v", err)
	}
	logger.Info("Cache hit (%d results, %d prior hits)", len(entry.Results), entry.HitCount)
	return outcome, true
}

// writeCache upserts the entry. Failures are swallowed and reported as
// a warning string; the search itself already succeeded.
func (s *WebSearchService) writeCache(ctx context.Context, queryKey, courseID string, results []domain.WebResult) string {
	now := s.now()
	entry := &domain.WebSearchEntry{
		ID:         uuid.New().String(),
		QueryKey:   queryKey,
		CourseID:   courseID,
		Results:    results,
		FetchedAt:  now,
		ExpiresAt:  now.Add(s.cfg.CacheTTL),
		HitCount:   0,
		LastUsedAt: now,
	}

	if err := s.cache.Upsert(ctx, entry); err != nil {
		logger.Warn("Cache write failed: %v", err)
		return fmt.Sprintf("cache write failed: %v", err)
	}
	return ""
}

// SweepExpired deletes all cache entries past their TTL. It runs on its
// own schedule and interleaves safely with concurrent reads and writes.
func (s *WebSearchService) SweepExpired(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	deleted, err := s.cache.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("cache sweep: %w", err)
	}
	if deleted > 0 {
		logger.Info("Swept %d expired web cache entries", deleted)
	}
	return deleted, nil
}

// Invalidate removes a cached query regardless of expiry.
func (s *WebSearchService) Invalidate(ctx context.Context, query, courseID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, domain.WebQueryKey(query), courseID)
}
