package domain

import "time"

// Material categories used for retrieval filtering.
const (
	CategoryTheory = "theory"
	CategoryLab    = "lab"
)

// Material represents an uploaded course material.
// It is the canonical representation before chunking and embedding.
type Material struct {
	// ID is the unique identifier for the material.
	ID string

	// CourseID is the scope (tenancy boundary) the material belongs to.
	// All retrieval and caching is partitioned by course.
	CourseID string

	// Title is the human-readable title.
	Title string

	// Content is the full extracted text content.
	Content string

	// FileType is the original file extension without the dot
	// (e.g. "pdf", "py", "md").
	FileType string

	// Category classifies the material as theory or lab content.
	Category string

	// Language is the programming language for code materials,
	// empty for prose.
	Language string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the material was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the material was last re-ingested.
	UpdatedAt time.Time
}

// IsCode reports whether the material holds source code and should be
// chunked with the structure-aware chunker.
func (m *Material) IsCode() bool {
	return m.Language != ""
}

// Chunk represents an embedded, searchable segment of a material.
// Chunks are created once at ingestion time and are immutable; they are
// destroyed only when the owning material is deleted.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// MaterialID links to the parent Material.
	MaterialID string

	// Content is the text content of this chunk.
	Content string

	// Index is the ordinal position within the material.
	// Chunks from one material are contiguous and ordered by Index.
	Index int

	// StartOffset and EndOffset locate the chunk in the original text.
	// Before trimming, EndOffset-StartOffset equals len(Content).
	StartOffset int
	EndOffset   int

	// Embedding is the vector representation for similarity search.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs, such as the
	// language and extracted symbols for code chunks.
	Metadata map[string]any
}
