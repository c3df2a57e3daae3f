// Package services implements the retrieval, relevance-gating,
// context-assembly and validation pipeline. Services contain the core
// business logic and orchestrate calls to driven ports (adapters).
//
// Components are constructed once at process start and wired together
// explicitly; there is no hidden global state.
package services
