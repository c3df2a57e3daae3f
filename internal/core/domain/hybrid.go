package domain

// WebTrigger records why web fallback fired for a hybrid query.
type WebTrigger string

const (
	// TriggerNone means web search did not run.
	TriggerNone WebTrigger = ""

	// TriggerLowRelevance means course evidence fell below the
	// relevance threshold.
	TriggerLowRelevance WebTrigger = "low_relevance"

	// TriggerUserRequest means the caller explicitly forced web search.
	TriggerUserRequest WebTrigger = "user_request"

	// TriggerRecency means the query contained recency-indicating terms.
	TriggerRecency WebTrigger = "recency"
)

// HybridOptions configures one hybrid search query.
type HybridOptions struct {
	// Limit is the maximum results per evidence kind. Zero means the
	// configured default.
	Limit int

	// ForceWeb overrides the automatic fallback decision when non-nil:
	// true always runs web search, false never does.
	ForceWeb *bool

	// Filters narrows the course retrieval.
	Filters RetrievalFilters

	// UseCache controls web search cache usage. Defaults to true.
	UseCache *bool
}

// HybridResult is the merged outcome of one hybrid query.
type HybridResult struct {
	// Query is the original query text.
	Query string

	// CourseResults holds course-corpus evidence, ordered by
	// descending similarity.
	CourseResults []RetrievedResult

	// WebResults holds web evidence when fallback fired.
	WebResults []WebResult

	// AvgRelevance is the mean similarity over the unfiltered course
	// candidate set. It reflects true corpus relevance, not the
	// post-filter subset.
	AvgRelevance float64

	// UsedWeb reports whether web results were actually merged in.
	// A provider failure during fallback leaves this false.
	UsedWeb bool

	// WebCached reports whether web results came from the cache.
	WebCached bool

	// Trigger records which condition fired the fallback.
	Trigger WebTrigger

	// TookMS is the end-to-end query time in milliseconds.
	TookMS int64
}
