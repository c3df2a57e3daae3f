package domain

import "time"

// Default pipeline configuration values.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultSeparator    = "\n\n"

	DefaultSearchTopK         = 5
	DefaultRelevanceThreshold = 0.40

	DefaultWebCacheTTL      = 7 * 24 * time.Hour
	DefaultWebRateLimit     = 5 // provider requests per rolling minute
	DefaultWebResultLimit   = 5
	DefaultWebSearchRecency = "week"

	DefaultContextBudget = 8000

	DefaultMemorySoftCap = 20
	DefaultMemoryHardCap = 100

	DefaultMaxGenerationTokens   = 4096
	DefaultGenerationTemperature = 0.7

	// DefaultEmbedCharBudget is the largest single input submitted to
	// the embedding gateway. Longer inputs are truncated, never rejected.
	DefaultEmbedCharBudget = 2000
)

// Settings holds the tunable pipeline configuration, loaded from the
// config store with defaults applied.
type Settings struct {
	// ChunkSize is the target chunk size in characters.
	ChunkSize int

	// ChunkOverlap is the sliding-window overlap between chunks.
	// Must be smaller than ChunkSize.
	ChunkOverlap int

	// SearchTopK is the default course retrieval limit.
	SearchTopK int

	// RelevanceThreshold is the similarity cutoff below which course
	// evidence is considered insufficient, triggering web fallback.
	RelevanceThreshold float64

	// WebCacheTTL is how long cached web results stay fresh.
	WebCacheTTL time.Duration

	// WebRateLimit is the provider request budget per rolling minute.
	WebRateLimit int

	// WebResultLimit is the maximum web results per query.
	WebResultLimit int

	// ContextBudget is the assembled context size limit in characters.
	ContextBudget int

	// MemorySoftCap is the number of turns returned verbatim.
	MemorySoftCap int

	// MemoryHardCap is the turn count beyond which the oldest overflow
	// collapses into a summary turn.
	MemoryHardCap int

	// MaxGenerationTokens bounds LLM completions.
	MaxGenerationTokens int

	// GenerationTemperature is the LLM sampling temperature.
	GenerationTemperature float64
}

// DefaultSettings returns the deployment defaults.
func DefaultSettings() Settings {
	return Settings{
		ChunkSize:             DefaultChunkSize,
		ChunkOverlap:          DefaultChunkOverlap,
		SearchTopK:            DefaultSearchTopK,
		RelevanceThreshold:    DefaultRelevanceThreshold,
		WebCacheTTL:           DefaultWebCacheTTL,
		WebRateLimit:          DefaultWebRateLimit,
		WebResultLimit:        DefaultWebResultLimit,
		ContextBudget:         DefaultContextBudget,
		MemorySoftCap:         DefaultMemorySoftCap,
		MemoryHardCap:         DefaultMemoryHardCap,
		MaxGenerationTokens:   DefaultMaxGenerationTokens,
		GenerationTemperature: DefaultGenerationTemperature,
	}
}

// Validate checks invariants that would otherwise corrupt the pipeline.
func (s Settings) Validate() error {
	if s.ChunkSize <= 0 || s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return ErrInvalidConfig
	}
	if s.RelevanceThreshold < 0 || s.RelevanceThreshold > 1 {
		return ErrInvalidConfig
	}
	if s.MemorySoftCap <= 0 || s.MemoryHardCap <= s.MemorySoftCap {
		return ErrInvalidConfig
	}
	if s.ContextBudget <= 0 || s.WebRateLimit <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
