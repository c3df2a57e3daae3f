package chunker

import (
	"strings"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
)

// blockMarkers lists the line prefixes that open a logical code block
// per language. The code chunker prefers to break at these so a
// function or class stays within one chunk.
var blockMarkers = map[string][]string{
	"python":     {"def ", "class "},
	"javascript": {"function ", "class ", "const "},
	"typescript": {"function ", "class ", "const ", "interface "},
	"java":       {"public ", "private ", "protected ", "class "},
	"c":          {"void ", "int ", "struct "},
	"cpp":        {"void ", "int ", "class ", "struct "},
	"go":         {"func ", "type "},
}

// ChunkCode splits source code with awareness of block structure.
// It breaks at a block-start marker once the buffer exceeds half the
// target size, and hard-splits any single block that still exceeds the
// full size. The language is recorded in each chunk's metadata.
func ChunkCode(code, language string, cfg Config, metadata map[string]any) ([]domain.Chunk, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}

	markers := blockMarkers[strings.ToLower(language)]

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
		md := cloneMetadata(metadata)
		md["language"] = language
		chunks = append(chunks, domain.Chunk{
			Content:     content,
			Index:       index,
			StartOffset: currentStart,
			EndOffset:   end,
			Metadata:    md,
		})
		index++
	}

	for _, line := range strings.Split(code, "\n") {
		withNewline := line + "\n"

		if startsBlock(line, markers) && current.Len() > cfg.Size/2 {
			emit(pos)
			current.Reset()
			currentStart = pos
		}

		current.WriteString(withNewline)
		pos += len(withNewline)

		// Hard split: a single block larger than the target size.
		if current.Len() > cfg.Size {
			emit(pos)
			current.Reset()
			currentStart = pos
		}
	}

	emit(pos)

	return chunks, nil
}

// startsBlock reports whether the line opens a logical code block.
func startsBlock(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
