// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the retrieval pipeline to function:
//
//   - EmbeddingService: Converts text to fixed-dimension vectors
//   - VectorIndex: Stores chunk vectors, answers scoped top-k queries
//   - CacheStore: Web search cache persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - WebSearchProvider: Web fallback. Without it, hybrid search is course-only.
//   - LLMService: Generation and judge scoring. Without it, relevance
//     validation falls back to a neutral score.
//   - MessageStore / GenerationStore: Persistence for chat and generations.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
