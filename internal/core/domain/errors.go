package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates an invalid chunker or threshold
	// configuration. Configuration errors are fatal and surface
	// to the caller rather than degrading.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoEvidence indicates the index or web provider returned nothing
	// usable. This is an expected state, not a system fault: callers
	// degrade to a "no evidence" response instead of failing.
	ErrNoEvidence = errors.New("no evidence available")

	// ErrRateLimited indicates the web provider request budget is
	// exhausted. Callers suspend until the window resets rather than
	// propagating this error.
	ErrRateLimited = errors.New("rate limited")

	// ErrStreamCancelled indicates a streaming generation was cancelled
	// by the consumer before completion.
	ErrStreamCancelled = errors.New("stream cancelled")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not
	// configured. Similarity search is disabled.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Generation and judge-based relevance scoring are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
