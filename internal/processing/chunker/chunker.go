// Package chunker splits material text into overlapping, size-bounded
// segments with positional metadata, ready for embedding.
package chunker

import (
	"fmt"
	"strings"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

// Default chunking parameters.
const (
	DefaultSize      = 1000
	DefaultOverlap   = 200
	DefaultSeparator = "\n\n"
)

// Config controls how text is split.
type Config struct {
	// Size is the target chunk size in characters.
	Size int

	// Overlap is the number of trailing characters carried into the
	// next chunk. Must be smaller than Size.
	Overlap int

	// Separator is the primary boundary to split on before size-based
	// accumulation.
	Separator string
}

// withDefaults fills zero values with the deployment defaults.
func (c Config) withDefaults() Config {
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.Separator == "" {
		c.Separator = DefaultSeparator
	}
	return c
}

// validate rejects configurations that would loop or produce
// degenerate chunks.
func (c Config) validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("chunk size %d: %w", c.Size, domain.ErrInvalidConfig)
	}
	if c.Overlap < 0 || c.Overlap >= c.Size {
		return fmt.Errorf("overlap %d with size %d: %w", c.Overlap, c.Size, domain.ErrInvalidConfig)
	}
	return nil
}

// Chunk splits text into overlapping chunks with position tracking.
// Empty or whitespace-only input yields no chunks and no error. The
// returned chunks are contiguous, ordered by Index, and each carries the
// given metadata.
func Chunk(text string, cfg Config, metadata map[string]any) ([]domain.Chunk, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	segments := strings.Split(text, cfg.Separator)

	var chunks []domain.Chunk
	var current strings.Builder
	currentStart := 0
	index := 0
	pos := 0

	emit := func(end int) {
		content := strings.TrimSpace(current.String())
		if content == "" {
			return
		}
		chunks = append(chunks, domain.Chunk{
			Content:     content,
			Index:       index,
			StartOffset: currentStart,
			EndOffset:   end,
			Metadata:    cloneMetadata(metadata),
		})
		index++
	}

	for _, segment := range segments {
		withSep := segment + cfg.Separator

		// Finalise the current chunk before it would exceed the
		// target size, seeding the next one with the overlap tail.
		if current.Len() > 0 && current.Len()+len(withSep) > cfg.Size {
			emit(pos)

			buffered := current.String()
			overlapStart := len(buffered) - cfg.Overlap
			if overlapStart < 0 {
				overlapStart = 0
			}
			tail := buffered[overlapStart:]
			current.Reset()
			current.WriteString(tail)
			currentStart = pos - len(tail)
		}

		current.WriteString(withSep)
		pos += len(withSep)
	}

	emit(pos)

	return chunks, nil
}

// cloneMetadata copies metadata so chunks never share a mutable map.
func cloneMetadata(metadata map[string]any) map[string]any {
	cloned := make(map[string]any, len(metadata))
	for k, v := range metadata {
		cloned[k] = v
	}
	return cloned
}
