package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

func courseResult(title string, similarity float64, content string) domain.RetrievedResult {
	return domain.RetrievedResult{
		ChunkID:    "chunk-" + title,
		Title:      title,
		Content:    content,
		Similarity: similarity,
	}
}

func webResult(title string, score float64, snippet string) domain.WebResult {
	return domain.WebResult{
		Title:   title,
		URL:     "https://wikipedia.org/wiki/" + title,
		Snippet: snippet,
		Score:   score,
	}
}

func TestAssemble_CourseBeforeWeb(t *testing.T) {
	a := NewContextAssembler(8000)

	ctx := a.Assemble(
		[]domain.RetrievedResult{courseResult("Lecture", 0.5, "course body")},
		[]domain.WebResult{webResult("Article", 0.9, "web body")},
	)

	require.Len(t, ctx.Sources, 2)
	assert.Equal(t, domain.SourceCourse, ctx.Sources[0].Kind)
	assert.Equal(t, domain.SourceWeb, ctx.Sources[1].Kind)
	assert.Less(t, strings.Index(ctx.Text, "course body"), strings.Index(ctx.Text, "web body"))
}

func TestAssemble_DescendingRelevanceWithinKind(t *testing.T) {
	a := NewContextAssembler(8000)

	ctx := a.Assemble([]domain.RetrievedResult{
		courseResult("Low", 0.3, "low"),
		courseResult("High", 0.9, "high"),
		courseResult("Mid", 0.6, "mid"),
	}, nil)

	require.Len(t, ctx.Sources, 3)
	assert.Equal(t, "High", ctx.Sources[0].Title)
	assert.Equal(t, "Mid", ctx.Sources[1].Title)
	assert.Equal(t, "Low", ctx.Sources[2].Title)
}

func TestAssemble_CitationMarkersPerKind(t *testing.T) {
	a := NewContextAssembler(8000)

	ctx := a.Assemble(
		[]domain.RetrievedResult{
			courseResult("A", 0.9, "a"),
			courseResult("B", 0.8, "b"),
		},
		[]domain.WebResult{webResult("C", 0.9, "c")},
	)

	require.Len(t, ctx.Sources, 3)
	assert.Equal(t, "[C1]", ctx.Sources[0].CitationMarker)
	assert.Equal(t, "[C2]", ctx.Sources[1].CitationMarker)
	assert.Equal(t, "[W1]", ctx.Sources[2].CitationMarker)
	assert.Contains(t, ctx.Text, "[C1]")
	assert.Contains(t, ctx.Text, "[W1]")
}

func TestAssemble_BudgetNeverExceeded(t *testing.T) {
	a := NewContextAssembler(300)

	ctx := a.Assemble([]domain.RetrievedResult{
		courseResult("One", 0.9, strings.Repeat("x", 200)),
		courseResult("Two", 0.8, strings.Repeat("y", 200)),
		courseResult("Three", 0.7, strings.Repeat("z", 200)),
	}, nil)

	assert.LessOrEqual(t, ctx.TotalLength, 300)
	assert.Equal(t, len(ctx.Text), ctx.TotalLength)
	assert.True(t, ctx.Truncated)
	// At least one source was dropped whole; none partially.
	require.Len(t, ctx.Sources, 1)
	assert.NotContains(t, ctx.Text, "y")
}

func TestAssemble_TruncationDropsLowestRelevanceFirst(t *testing.T) {
	a := NewContextAssembler(250)

	ctx := a.Assemble([]domain.RetrievedResult{
		courseResult("Low", 0.2, strings.Repeat("l", 150)),
		courseResult("High", 0.9, strings.Repeat("h", 150)),
	}, nil)

	require.Len(t, ctx.Sources, 1)
	assert.Equal(t, "High", ctx.Sources[0].Title)
	assert.True(t, ctx.Truncated)
}

func TestAssemble_NoSourcesYieldsPlaceholder(t *testing.T) {
	a := NewContextAssembler(8000)

	ctx := a.Assemble(nil, nil)

	assert.Equal(t, domain.NoEvidencePlaceholder, ctx.Text)
	assert.NotEmpty(t, ctx.Text)
	assert.False(t, ctx.Truncated)
	assert.Empty(t, ctx.Sources)
}

func TestAssemble_AllSourcesOverflowYieldsPlaceholder(t *testing.T) {
	a := NewContextAssembler(50)

	ctx := a.Assemble([]domain.RetrievedResult{
		courseResult("Huge", 0.9, strings.Repeat("x", 500)),
	}, nil)

	assert.Equal(t, domain.NoEvidencePlaceholder, ctx.Text)
	assert.True(t, ctx.Truncated)
	assert.Empty(t, ctx.Sources)
}

func TestAssemble_WebSourceCarriesURL(t *testing.T) {
	a := NewContextAssembler(8000)

	ctx := a.Assemble(nil, []domain.WebResult{webResult("Article", 0.9, "body")})

	require.Len(t, ctx.Sources, 1)
	assert.Contains(t, ctx.Text, ctx.Sources[0].URL)
}
