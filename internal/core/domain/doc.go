// Package domain defines the core business entities for Claridad.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a regulatory PDF (fund regulation or applicable norm)
//   - Chunk: an overlapping word window used as the retrieval unit
//   - Analysis: the persisted result of one comparative analysis
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
