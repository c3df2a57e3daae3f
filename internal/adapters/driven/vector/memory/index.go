// Package memory provides an in-memory vector index. Suitable for
// tests and single-process deployments; a pgvector or LanceDB adapter
// can be swapped in behind the same port.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// entry is one stored chunk with its course scope.
type entry struct {
	courseID string
	chunk    domain.Chunk
}

// VectorIndex is an in-memory implementation of driven.VectorIndex.
// Scope filtering happens before scoring, so a query for one course
// never observes another course's chunks.
type VectorIndex struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewVectorIndex creates a new in-memory vector index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{
		entries: make(map[string]entry),
	}
}

// Add inserts chunks with their embeddings under the given course
// scope. Re-adding a chunk ID overwrites the previous entry.
func (v *VectorIndex) Add(_ context.Context, courseID string, chunks []domain.Chunk) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, chunk := range chunks {
		v.entries[chunk.ID] = entry{courseID: courseID, chunk: chunk}
	}
	return nil
}

// DeleteByMaterial removes all chunks of a material.
func (v *VectorIndex) DeleteByMaterial(_ context.Context, materialID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for id, e := range v.entries {
		if e.chunk.MaterialID == materialID {
			delete(v.entries, id)
		}
	}
	return nil
}

// SimilaritySearch finds the k most similar chunks within the scope
// whose cosine similarity meets the threshold.
func (v *VectorIndex) SimilaritySearch(_ context.Context, query []float32, courseID string, k int, threshold float64) ([]driven.VectorHit, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var hits []driven.VectorHit
	for _, e := range v.entries {
		if e.courseID != courseID {
			continue
		}
		score := cosineSimilarity(query, e.chunk.Embedding)
		if score < threshold {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ChunkID:    e.chunk.ID,
			MaterialID: e.chunk.MaterialID,
			Content:    e.chunk.Content,
			Similarity: score,
			Metadata:   e.chunk.Metadata,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored chunks.
func (v *VectorIndex) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}

// Close releases resources (no-op for in-memory).
func (v *VectorIndex) Close() error {
	return nil
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
