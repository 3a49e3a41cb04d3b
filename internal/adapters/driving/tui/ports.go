// Package tui provides an interactive terminal user interface for claridad.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis runs the regulatory comparisons.
	Analysis driving.AnalysisService

	// Indexer exposes the indexed document registry.
	Indexer driving.IndexerService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(analysis driving.AnalysisService, indexer driving.IndexerService) *Ports {
	return &Ports{
		Analysis: analysis,
		Indexer:  indexer,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Indexer == nil {
		return ErrMissingIndexerService
	}
	return nil
}
