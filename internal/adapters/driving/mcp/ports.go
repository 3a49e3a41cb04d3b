package mcp

import (
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis runs the regulatory comparisons.
	Analysis driving.AnalysisService

	// Indexer exposes the indexed document registry.
	Indexer driving.IndexerService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	// Indexer is optional; resources degrade to empty listings.
	return nil
}
