package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

func TestGenerationStore_SaveAndGet(t *testing.T) {
	store := NewGenerationStore()
	ctx := context.Background()

	gen := &domain.Generation{
		ID:       "g1",
		CourseID: "course-1",
		Kind:     domain.GenerationCodeExample,
		Topic:    "linked lists",
		Language: "python",
		Content:  "def insert(node): ...",
		Validation: &domain.ValidationResult{
			Status:       domain.StatusValidated,
			OverallScore: 85,
			SyntaxValid:  true,
		},
	}
	require.NoError(t, store.Save(ctx, gen))

	got, err := store.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "linked lists", got.Topic)
	assert.Equal(t, "python", got.Language)
	require.NotNil(t, got.Validation)
	assert.True(t, got.Validation.SyntaxValid)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGenerationStore_GetMissingReturnsNotFound(t *testing.T) {
	store := NewGenerationStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerationStore_ListByCourseNewestFirst(t *testing.T) {
	store := NewGenerationStore()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, &domain.Generation{
			ID:        fmt.Sprintf("g%d", i),
			CourseID:  "course-1",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, store.Save(ctx, &domain.Generation{ID: "other", CourseID: "course-2", CreatedAt: base}))

	got, err := store.ListByCourse(ctx, "course-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "g2", got[0].ID)
	assert.Equal(t, "g0", got[2].ID)
}

func TestGenerationStore_ListByCourseHonorsLimit(t *testing.T) {
	store := NewGenerationStore()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(ctx, &domain.Generation{
			ID:        fmt.Sprintf("g%d", i),
			CourseID:  "course-1",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	got, err := store.ListByCourse(ctx, "course-1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "g4", got[0].ID)
}
