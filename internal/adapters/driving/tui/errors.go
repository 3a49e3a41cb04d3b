package tui

import "errors"

var (
	// ErrMissingAnalysisService is returned when the analysis service is not provided.
	ErrMissingAnalysisService = errors.New("tui: analysis service is required")

	// ErrMissingIndexerService is returned when the indexer service is not provided.
	ErrMissingIndexerService = errors.New("tui: indexer service is required")
)
