// Package domain defines the core business entities for the learning platform
// retrieval and validation pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Material: An uploaded course material with metadata
//   - Chunk: An embedded, searchable segment of a material
//   - RetrievedResult: A scored course-corpus hit for one query
//   - WebResult / WebSearchEntry: Web evidence and its cache record
//   - HybridResult: Merged course + web evidence for one query
//   - AssembledContext: The bounded, cited prompt context
//   - ValidationResult: The post-hoc score of a generated artifact
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
