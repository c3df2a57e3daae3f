package domain

// SourceKind distinguishes the origin of an assembled context source.
type SourceKind string

const (
	// SourceCourse marks evidence drawn from course materials.
	SourceCourse SourceKind = "course"

	// SourceWeb marks evidence drawn from web search.
	SourceWeb SourceKind = "web"
)

// NoEvidencePlaceholder is returned as the context body when no evidence
// of either kind is available. An explicit placeholder lets the
// generation prompt react deterministically instead of the model
// inventing unstated access limitations.
const NoEvidencePlaceholder = "No relevant course materials or web sources were found for this query."

// ContextSource is one attributed evidence block in an assembled context.
type ContextSource struct {
	// Kind is the evidence origin.
	Kind SourceKind

	// Title is the source attribution (material title or web page title).
	Title string

	// URL is set for web sources only.
	URL string

	// Body is the evidence text.
	Body string

	// CitationMarker is the structured marker the model is instructed to
	// cite with, e.g. "[C1]" for course or "[W2]" for web sources.
	CitationMarker string

	// Relevance is the source's similarity or provider score.
	Relevance float64
}

// AssembledContext is the bounded prompt context for one generation call.
// TotalLength never exceeds the configured budget; truncation drops the
// lowest-relevance sources whole and never re-orders retained ones.
type AssembledContext struct {
	// Sources holds the retained evidence blocks: course sources first,
	// then web sources, each ordered by descending relevance.
	Sources []ContextSource

	// Text is the rendered context with citation markup.
	Text string

	// TotalLength is len(Text).
	TotalLength int

	// Truncated reports whether at least one source was dropped to fit
	// the budget.
	Truncated bool
}
