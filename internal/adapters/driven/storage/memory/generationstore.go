package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// Ensure GenerationStore implements the interface.
var _ driven.GenerationStore = (*GenerationStore)(nil)

// GenerationStore is an in-memory implementation of
// driven.GenerationStore.
type GenerationStore struct {
	mu          sync.RWMutex
	generations map[string]domain.Generation
}

// NewGenerationStore creates a new in-memory generation store.
func NewGenerationStore() *GenerationStore {
	return &GenerationStore{
		generations: make(map[string]domain.Generation),
	}
}

// Save stores a generation record.
func (s *GenerationStore) Save(_ context.Context, gen *domain.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *gen
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.generations[gen.ID] = stored
	return nil
}

// Get returns a generation by ID, or domain.ErrNotFound.
func (s *GenerationStore) Get(_ context.Context, id string) (*domain.Generation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gen, ok := s.generations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &gen, nil
}

// ListByCourse returns up to limit generations for a course, newest
// first.
func (s *GenerationStore) ListByCourse(_ context.Context, courseID string, limit int) ([]domain.Generation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Generation
	for id := range s.generations {
		gen := s.generations[id]
		if gen.CourseID == courseID {
			result = append(result, gen)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
