package driven

import (
	"context"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

// LLMService provides completion operations for generation, chat and
// judge-based validation scoring. This is an optional service - without
// it, generation is disabled and relevance validation degrades to a
// neutral score.
type LLMService interface {
	// Chat produces a completion for a multi-turn conversation.
	Chat(ctx context.Context, turns []domain.Turn, opts ChatOptions) (string, error)

	// ChatStream produces a completion incrementally. The returned
	// channel yields content deltas as they arrive and is closed when
	// generation finishes; a terminal failure is reported on the final
	// delta. Cancelling ctx stops the upstream call.
	ChatStream(ctx context.Context, turns []domain.Turn, opts ChatOptions) (<-chan StreamDelta, error)

	// ScoreRelevance rates how relevant content is to a topic on a
	// 0-100 scale, used by the validation engine as a judge.
	ScoreRelevance(ctx context.Context, content, topic string) (float64, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// ChatOptions configures completion behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// StreamDelta is one increment of a streaming completion.
type StreamDelta struct {
	// Content is the text increment, empty on the terminal delta.
	Content string

	// Err is set on the terminal delta when generation failed upstream.
	Err error
}
