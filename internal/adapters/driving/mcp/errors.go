// Package mcp provides an MCP (Model Context Protocol) server adapter for Claridad.
// It lets AI assistants run the regulatory analyses and browse the indexed corpus.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
