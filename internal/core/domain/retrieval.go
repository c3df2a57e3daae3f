package domain

// RetrievalFilters narrows course retrieval to a subset of the corpus.
// Filters are applied before truncation to the result limit so a loose
// filter never silently shrinks the result set below the requested k.
type RetrievalFilters struct {
	// Category restricts results to theory or lab materials.
	// Empty means no category filter.
	Category string

	// FileType restricts results to a single file type.
	// Empty means no file type filter.
	FileType string
}

// RetrievedResult is a scored course-corpus hit for one query.
// Results are ephemeral and query-scoped; they are never persisted.
type RetrievedResult struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// MaterialID identifies the chunk's parent material.
	MaterialID string

	// CourseID is the scope the result was retrieved from.
	CourseID string

	// Content is the chunk text.
	Content string

	// Title is the parent material's title, used for attribution.
	Title string

	// FileType and Category mirror the parent material's classification.
	FileType string
	Category string

	// Similarity is the cosine similarity to the query in [0,1].
	Similarity float64

	// ChunkIndex is the chunk's ordinal position in the material.
	ChunkIndex int

	// Metadata carries through the chunk metadata.
	Metadata map[string]any
}
