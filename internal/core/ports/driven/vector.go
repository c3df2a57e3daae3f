package driven

import (
	"context"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

// VectorIndex provides scoped semantic similarity search.
// Scope filtering happens server-side: a query for one course never
// observes another course's chunks.
type VectorIndex interface {
	// Add inserts chunks with their embeddings under the given course
	// scope.
	Add(ctx context.Context, courseID string, chunks []domain.Chunk) error

	// DeleteByMaterial removes all chunks of a material. Deleting a
	// material cascades here.
	DeleteByMaterial(ctx context.Context, materialID string) error

	// SimilaritySearch finds the k most similar chunks within the scope
	// whose cosine similarity meets the threshold. A threshold of zero
	// returns all candidates.
	SimilaritySearch(ctx context.Context, query []float32, courseID string, k int, threshold float64) ([]VectorHit, error)

	// Close releases resources.
	Close() error
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// MaterialID is the chunk's parent material.
	MaterialID string

	// Content is the chunk text.
	Content string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64

	// Metadata carries the chunk metadata, including the parent
	// material's title, file type and category.
	Metadata map[string]any
}
