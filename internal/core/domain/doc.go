// Package domain defines the core business entities for the study assistant.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: an uploaded text with its passages and optional vectors
//   - Collection: every stored passage with its vector slot and source
//   - RetrievedPassage: one ranked retrieval result
//   - Session: an ordered conversation used to build chat prompts
//   - Quiz: generated questions and their grading
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
