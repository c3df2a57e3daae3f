package services

import (
	"context"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
)

// candidateMultiplier widens the index query so the average relevance is
// computed over a candidate set larger than the requested k.
const candidateMultiplier = 4

// Retriever queries the vector index for course evidence and computes
// aggregate relevance. An index or embedding failure degrades to an
// empty result set: callers must treat "no results" as "no evidence",
// never as an error, because downstream relevance gating depends on
// that distinction.
type Retriever struct {
	embedding driven.EmbeddingService
	index     driven.VectorIndex
	threshold float64
}

// NewRetriever creates a retriever with the configured similarity
// threshold.
func NewRetriever(embedding driven.EmbeddingService, index driven.VectorIndex, threshold float64) *Retriever {
	return &Retriever{
		embedding: embedding,
		index:     index,
		threshold: threshold,
	}
}

// Retrieve returns up to k course chunks relevant to the query within
// the course scope, filtered and ordered by descending similarity.
func (r *Retriever) Retrieve(
	ctx context.Context, query, courseID string, k int, filters domain.RetrievalFilters,
) []domain.RetrievedResult {
	results, _ := r.RetrieveWithAverage(ctx, query, courseID, k, filters)
	return results
}

// RetrieveWithAverage retrieves like Retrieve and additionally reports
// the mean similarity over the UNFILTERED candidate set. The average
// must reflect true corpus relevance: computing it after filtering
// would bias the web-fallback decision toward whatever subset the
// filters happened to keep.
func (r *Retriever) RetrieveWithAverage(
	ctx context.Context, query, courseID string, k int, filters domain.RetrievalFilters,
) ([]domain.RetrievedResult, float64) {
	logger.Section("Course Retrieval")
	logger.Debug("Query: %q, course: %s, k: %d", query, courseID, k)

	if r.embedding == nil || r.index == nil {
		logger.Warn("Retrieval unavailable: embedding or index not configured")
		return []domain.RetrievedResult{}, 0.0
	}
	if k <= 0 {
		k = domain.DefaultSearchTopK
	}

	queryVector, err := r.embedding.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return []domain.RetrievedResult{}, 0.0
	}

	// Threshold zero fetches all candidates so the average covers the
	// whole candidate set, not just the matches above the cutoff.
	hits, err := r.index.SimilaritySearch(ctx, queryVector, courseID, k*candidateMultiplier, 0.0)
	if err != nil {
		logger.Warn("Vector index error: %v", err)
		return []domain.RetrievedResult{}, 0.0
	}
	if len(hits) == 0 {
		logger.Debug("No candidates in corpus")
		return []domain.RetrievedResult{}, 0.0
	}

	var sum float64
	for _, hit := range hits {
		sum += hit.Similarity
	}
	avgRelevance := sum / float64(len(hits))
	logger.Debug("Candidates: %d, avg relevance: %.3f", len(hits), avgRelevance)

	// Filters apply before truncation so loose filters never shrink
	// the result set below k silently.
	results := make([]domain.RetrievedResult, 0, k)
	for _, hit := range hits {
		if hit.Similarity < r.threshold {
			continue
		}
		result := hitToResult(hit, courseID)
		if !matchesFilters(result, filters) {
			continue
		}
		results = append(results, result)
		if len(results) == k {
			break
		}
	}

	logger.Info("Retrieved %d/%d results above threshold %.2f", len(results), len(hits), r.threshold)
	return results, avgRelevance
}

// hitToResult converts a vector hit into an attributed result using the
// metadata recorded at ingestion time.
func hitToResult(hit driven.VectorHit, courseID string) domain.RetrievedResult {
	result := domain.RetrievedResult{
		ChunkID:    hit.ChunkID,
		MaterialID: hit.MaterialID,
		CourseID:   courseID,
		Content:    hit.Content,
		Similarity: hit.Similarity,
		Metadata:   hit.Metadata,
	}
	if title, ok := hit.Metadata["title"].(string); ok {
		result.Title = title
	}
	if fileType, ok := hit.Metadata["file_type"].(string); ok {
		result.FileType = fileType
	}
	if category, ok := hit.Metadata["category"].(string); ok {
		result.Category = category
	}
	if index, ok := hit.Metadata["chunk_index"].(int); ok {
		result.ChunkIndex = index
	}
	return result
}

// matchesFilters applies the category and file-type filters.
func matchesFilters(result domain.RetrievedResult, filters domain.RetrievalFilters) bool {
	if filters.Category != "" && result.Category != filters.Category {
		return false
	}
	if filters.FileType != "" && result.FileType != filters.FileType {
		return false
	}
	return true
}
