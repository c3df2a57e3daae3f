package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
)

// ContextAssembler turns retrieval output into a bounded, citable
// prompt context. Course material always precedes web material, and a
// source that would blow the character budget is dropped whole rather
// than cut mid-snippet.
type ContextAssembler struct {
	budget int
}

// NewContextAssembler creates an assembler with the given character
// budget. Non-positive budgets fall back to the default.
func NewContextAssembler(budget int) *ContextAssembler {
	if budget <= 0 {
		budget = domain.DefaultContextBudget
	}
	return &ContextAssembler{budget: budget}
}

// Assemble builds the evidence block for a generation prompt. Sources
// are ordered course-first, then by descending relevance within each
// kind. Each retained source carries a citation marker ([C1], [W2],
// ...) numbered per kind in final order. When the next source would
// exceed the budget it and everything after it are dropped whole and
// Truncated is set. With no usable sources at all the context text is
// an explicit placeholder, never an empty string.
func (a *ContextAssembler) Assemble(
	courseResults []domain.RetrievedResult, webResults []domain.WebResult,
) domain.AssembledContext {
	candidates := make([]domain.ContextSource, 0, len(courseResults)+len(webResults))

	course := make([]domain.RetrievedResult, len(courseResults))
	copy(course, courseResults)
	sort.SliceStable(course, func(i, j int) bool {
		return course[i].Similarity > course[j].Similarity
	})
	for _, r := range course {
		candidates = append(candidates, domain.ContextSource{
			Kind:      domain.SourceCourse,
			Title:     r.Title,
			Body:      r.Content,
			Relevance: r.Similarity,
		})
	}

	web := make([]domain.WebResult, len(webResults))
	copy(web, webResults)
	sort.SliceStable(web, func(i, j int) bool {
		return web[i].Score > web[j].Score
	})
	for _, r := range web {
		candidates = append(candidates, domain.ContextSource{
			Kind:      domain.SourceWeb,
			Title:     r.Title,
			URL:       r.URL,
			Body:      r.Snippet,
			Relevance: r.Score,
		})
	}

	assembled := domain.AssembledContext{}
	if len(candidates) == 0 {
		assembled.Text = domain.NoEvidencePlaceholder
		assembled.TotalLength = len(assembled.Text)
		return assembled
	}

	var b strings.Builder
	courseN, webN := 0, 0
	for _, src := range candidates {
		switch src.Kind {
		case domain.SourceCourse:
			src.CitationMarker = fmt.Sprintf("[C%d]", courseN+1)
		default:
			src.CitationMarker = fmt.Sprintf("[W%d]", webN+1)
		}

		block := renderSource(src)
		if b.Len()+len(block) > a.budget {
			// Everything from here on is lower priority than what is
			// already in; drop the tail whole.
			assembled.Truncated = true
			logger.Debug("Context budget reached, dropping source %q and below", src.Title)
			break
		}

		b.WriteString(block)
		assembled.Sources = append(assembled.Sources, src)
		if src.Kind == domain.SourceCourse {
			courseN++
		} else {
			webN++
		}
	}

	if len(assembled.Sources) == 0 {
		// Every candidate overflowed the budget on its own.
		assembled.Text = domain.NoEvidencePlaceholder
		assembled.TotalLength = len(assembled.Text)
		return assembled
	}

	assembled.Text = b.String()
	assembled.TotalLength = b.Len()
	logger.Info("Assembled context: %d sources, %d chars (truncated=%t)",
		len(assembled.Sources), assembled.TotalLength, assembled.Truncated)
	return assembled
}

// renderSource formats one source block. The marker leads the block so
// the model can cite it back verbatim.
func renderSource(src domain.ContextSource) string {
	var b strings.Builder
	b.WriteString(src.CitationMarker)
	b.WriteString(" ")
	if src.Title != "" {
		b.WriteString(src.Title)
	} else if src.Kind == domain.SourceCourse {
		b.WriteString("Course material")
	} else {
		b.WriteString("Web source")
	}
	if src.URL != "" {
		b.WriteString(" (")
		b.WriteString(src.URL)
		b.WriteString(")")
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(src.Body))
	b.WriteString("\n\n")
	return b.String()
}
