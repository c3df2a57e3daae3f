package services

import (
	"context"
	"strings"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
)

// recencyTerms are the query words that indicate the user wants fresh
// information the course corpus cannot have.
var recencyTerms = []string{"latest", "current", "recent", "news", "update", "trend"}

// HybridSearchService composes course retrieval and the web search
// cache under a single relevance-gating policy. One logical query moves
// through course retrieval, a fallback decision, optional web fallback
// and a merged result.
type HybridSearchService struct {
	retriever *Retriever
	web       *WebSearchService
	threshold float64
	limit     int
}

// NewHybridSearchService creates the orchestrator. The web service may
// be nil, in which case every query is course-only.
func NewHybridSearchService(retriever *Retriever, web *WebSearchService, threshold float64, limit int) *HybridSearchService {
	if limit <= 0 {
		limit = domain.DefaultSearchTopK
	}
	return &HybridSearchService{
		retriever: retriever,
		web:       web,
		threshold: threshold,
		limit:     limit,
	}
}

// HybridSearch runs one hybrid query. Web fallback fires when the
// caller forces it, when the unfiltered average course relevance falls
// strictly below the threshold, or when the query asks for recent
// information. An average exactly at the threshold does NOT trigger
// fallback. A web provider failure is non-fatal: the result degrades to
// course-only with UsedWeb false.
func (s *HybridSearchService) HybridSearch(
	ctx context.Context, query, courseID string, opts domain.HybridOptions,
) domain.HybridResult {
	logger.Section("Hybrid Search")
	start := time.Now()

	limit := opts.Limit
	if limit <= 0 {
		limit = s.limit
	}

	courseResults, avgRelevance := s.retriever.RetrieveWithAverage(
		ctx, query, courseID, limit, opts.Filters)

	result := domain.HybridResult{
		Query:         query,
		CourseResults: courseResults,
		AvgRelevance:  avgRelevance,
	}

	useWeb, trigger := s.decideWeb(query, avgRelevance, opts.ForceWeb)
	logger.Info("Web decision: %t (trigger=%s, avg=%.3f, threshold=%.2f)",
		useWeb, trigger, avgRelevance, s.threshold)

	if useWeb && s.web != nil {
		useCache := true
		if opts.UseCache != nil {
			useCache = *opts.UseCache
		}

		outcome, err := s.web.Search(ctx, query, courseID, useCache)
		switch {
		case err != nil:
			// Degrade to course-only; the failure reason stays in
			// the logs, not in the caller's lap.
			logger.Warn("Web fallback failed, degrading to course-only: %v", err)
		case len(outcome.Results) > 0:
			webResults := outcome.Results
			if len(webResults) > limit {
				webResults = webResults[:limit]
			}
			result.WebResults = webResults
			result.UsedWeb = true
			result.WebCached = outcome.Cached
			result.Trigger = trigger
		default:
			logger.Debug("Web fallback returned no results (%s)", outcome.ProviderError)
		}
	}

	result.TookMS = time.Since(start).Milliseconds()
	logger.Info("Hybrid search done: %d course + %d web results in %dms",
		len(result.CourseResults), len(result.WebResults), result.TookMS)
	return result
}

// decideWeb resolves the fallback decision and the trigger that fired.
func (s *HybridSearchService) decideWeb(query string, avgRelevance float64, forceWeb *bool) (bool, domain.WebTrigger) {
	if forceWeb != nil {
		if !*forceWeb {
			return false, domain.TriggerNone
		}
		return true, domain.TriggerUserRequest
	}

	if containsRecencyTerm(query) {
		return true, domain.TriggerRecency
	}

	// Strict less-than: relevance exactly at the threshold is
	// sufficient evidence.
	if avgRelevance < s.threshold {
		return true, domain.TriggerLowRelevance
	}

	return false, domain.TriggerNone
}

// containsRecencyTerm reports whether the query asks for fresh
// information.
func containsRecencyTerm(query string) bool {
	lowered := strings.ToLower(query)
	for _, term := range recencyTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
