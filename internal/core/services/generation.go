package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
)

// lowRelevanceNote is attached when course evidence barely covers the
// topic.
const lowRelevanceNote = "Limited course materials found for this topic. Enable web search for more content."

// lowRelevanceNoteThreshold is the average course relevance below which
// the advisory note is attached.
const lowRelevanceNoteThreshold = 0.3

// maxStoredTopic bounds the topic column in storage.
const maxStoredTopic = 500

const theoryPromptTemplate = `You are generating %s for a university course.

Write well-structured educational content about the topic below. Use
headings, lists and examples. Cite evidence using its markers: [C1] for
course materials, [W1] for web sources.

TOPIC: %s

EVIDENCE:
%s`

const codePromptTemplate = `You are generating a %s in %s for a university course.

Write clean, working, well-commented code for the topic below. Base it
on the provided evidence where possible. Respond with the code only, no
surrounding prose.

TOPIC: %s

EVIDENCE:
%s`

// GenerateOptions tunes one generation request.
type GenerateOptions struct {
	// UseWeb forces web evidence on (nil leaves the fallback decision
	// to the orchestrator).
	UseWeb *bool

	// Validate runs the matching validation pipeline on the artifact.
	Validate bool

	// Execute enables sandboxed execution during code validation.
	Execute bool
}

// GenerationService produces theory content and code examples from
// course and web evidence, validates them and persists the outcome.
type GenerationService struct {
	hybrid           *HybridSearchService
	assembler        *ContextAssembler
	llm              driven.LLMService
	store            driven.GenerationStore
	contentValidator *ContentValidator
	codeValidator    *CodeValidator
	searchLimit      int
}

// NewGenerationService wires the generation pipeline together.
func NewGenerationService(
	hybrid *HybridSearchService,
	assembler *ContextAssembler,
	llm driven.LLMService,
	store driven.GenerationStore,
	contentValidator *ContentValidator,
	codeValidator *CodeValidator,
	searchLimit int,
) *GenerationService {
	if searchLimit <= 0 {
		searchLimit = 2 * domain.DefaultSearchTopK
	}
	return &GenerationService{
		hybrid:           hybrid,
		assembler:        assembler,
		llm:              llm,
		store:            store,
		contentValidator: contentValidator,
		codeValidator:    codeValidator,
		searchLimit:      searchLimit,
	}
}

// GenerateTheory generates notes, a summary or a study guide for a
// topic. Kind must be one of the theory Generation* constants.
func (s *GenerationService) GenerateTheory(
	ctx context.Context, courseID, topic, kind string, opts GenerateOptions,
) (*domain.Generation, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("generation: %w", domain.ErrLLMUnavailable)
	}
	switch kind {
	case domain.GenerationTheoryNotes, domain.GenerationTheorySummary, domain.GenerationTheoryStudyGuide:
	default:
		return nil, fmt.Errorf("generation kind %q: %w", kind, domain.ErrInvalidInput)
	}

	logger.Section("Theory Generation")
	result := s.hybrid.HybridSearch(ctx, topic, courseID, domain.HybridOptions{
		Limit:    s.searchLimit,
		ForceWeb: opts.UseWeb,
	})
	assembled := s.assembler.Assemble(result.CourseResults, result.WebResults)

	prompt := fmt.Sprintf(theoryPromptTemplate, theoryKindLabel(kind), topic, assembled.Text)
	content, err := s.llm.Chat(ctx, []domain.Turn{
		{Role: domain.RoleSystem, Content: prompt},
		{Role: domain.RoleUser, Content: topic},
	}, driven.ChatOptions{})
	if err != nil {
		return nil, fmt.Errorf("theory generation: %w", err)
	}

	gen := s.newGeneration(courseID, topic, kind, content, &result, assembled.Sources)
	if opts.Validate && s.contentValidator != nil {
		validation := s.contentValidator.ValidateContent(ctx, content, topic, courseID)
		gen.Validation = &validation
	}

	if err := s.store.Save(ctx, gen); err != nil {
		return nil, fmt.Errorf("store generation: %w", err)
	}
	logger.Info("Generated %s for %q (%d chars, mix=%.2f)", kind, topic, len(content), gen.SourceMixRatio)
	return gen, nil
}

// GenerateCode generates a code example or solution for a topic in the
// given language. Kind must be one of the code Generation* constants.
func (s *GenerationService) GenerateCode(
	ctx context.Context, courseID, topic, language, kind string, opts GenerateOptions,
) (*domain.Generation, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("generation: %w", domain.ErrLLMUnavailable)
	}
	switch kind {
	case domain.GenerationCodeExample, domain.GenerationCodeSolution:
	default:
		return nil, fmt.Errorf("generation kind %q: %w", kind, domain.ErrInvalidInput)
	}

	logger.Section("Code Generation")
	query := fmt.Sprintf("%s %s code", topic, language)
	result := s.hybrid.HybridSearch(ctx, query, courseID, domain.HybridOptions{
		Limit:    s.searchLimit,
		ForceWeb: opts.UseWeb,
	})
	assembled := s.assembler.Assemble(result.CourseResults, result.WebResults)

	prompt := fmt.Sprintf(codePromptTemplate, codeKindLabel(kind), language, topic, assembled.Text)
	content, err := s.llm.Chat(ctx, []domain.Turn{
		{Role: domain.RoleSystem, Content: prompt},
		{Role: domain.RoleUser, Content: topic},
	}, driven.ChatOptions{Temperature: 0.2})
	if err != nil {
		return nil, fmt.Errorf("code generation: %w", err)
	}
	content = stripCodeFence(content)

	gen := s.newGeneration(courseID, topic, kind, content, &result, nil)
	gen.Language = language
	if opts.Validate && s.codeValidator != nil {
		validation := s.codeValidator.ValidateCode(ctx, content, language, opts.Execute)
		gen.Validation = &validation
	}

	if err := s.store.Save(ctx, gen); err != nil {
		return nil, fmt.Errorf("store generation: %w", err)
	}
	logger.Info("Generated %s (%s) for %q (%d chars)", kind, language, topic, len(content))
	return gen, nil
}

// Get returns a stored generation by ID.
func (s *GenerationService) Get(ctx context.Context, id string) (*domain.Generation, error) {
	return s.store.Get(ctx, id)
}

// ListByCourse returns recent generations for a course.
func (s *GenerationService) ListByCourse(ctx context.Context, courseID string, limit int) ([]domain.Generation, error) {
	return s.store.ListByCourse(ctx, courseID, limit)
}

// newGeneration builds the persisted record with source attribution,
// mix ratio and the low-relevance advisory note.
func (s *GenerationService) newGeneration(
	courseID, topic, kind, content string, result *domain.HybridResult, sources []domain.ContextSource,
) *domain.Generation {
	topic = strings.TrimSpace(topic)
	if len(topic) > maxStoredTopic {
		topic = topic[:maxStoredTopic]
	}

	courseCount := len(result.CourseResults)
	webCount := 0
	if result.UsedWeb {
		webCount = len(result.WebResults)
	}
	mix := 1.0
	if courseCount+webCount > 0 {
		mix = float64(courseCount) / float64(courseCount+webCount)
	}

	gen := &domain.Generation{
		ID:             uuid.NewString(),
		CourseID:       courseID,
		Kind:           kind,
		Topic:          topic,
		Content:        content,
		Sources:        sources,
		UsedWebSearch:  result.UsedWeb,
		SourceMixRatio: mix,
		CreatedAt:      time.Now(),
	}
	if result.AvgRelevance < lowRelevanceNoteThreshold {
		gen.Note = lowRelevanceNote
	}
	return gen
}

func theoryKindLabel(kind string) string {
	switch kind {
	case domain.GenerationTheorySummary:
		return "a topic summary"
	case domain.GenerationTheoryStudyGuide:
		return "a study guide"
	default:
		return "study notes"
	}
}

func codeKindLabel(kind string) string {
	if kind == domain.GenerationCodeSolution {
		return "complete solution"
	}
	return "code example"
}

// stripCodeFence removes a surrounding markdown fence from an
// LLM-produced code block.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return content
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
