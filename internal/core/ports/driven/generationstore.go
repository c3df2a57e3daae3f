package driven

import (
	"context"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

// GenerationStore persists generated artifacts with their validation
// outcome and evidence attribution.
type GenerationStore interface {
	// Save stores a generation record.
	Save(ctx context.Context, gen *domain.Generation) error

	// Get returns a generation by ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Generation, error)

	// ListByCourse returns up to limit generations for a course, newest
	// first.
	ListByCourse(ctx context.Context, courseID string, limit int) ([]domain.Generation, error)
}
