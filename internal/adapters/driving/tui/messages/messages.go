// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/claridad-labs/claridad/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DocumentsLoaded carries the registered documents back to the documents view.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// AnalysisCompleted carries an analysis result back to the analysis view.
type AnalysisCompleted struct {
	Analysis *domain.Analysis
	Err      error
}

// HistoryLoaded carries past analyses back to the history view.
type HistoryLoaded struct {
	Analyses []domain.Analysis
	Err      error
}

// ErrorOccurred reports an error to the active view.
type ErrorOccurred struct {
	Err error
}

// Quit requests application shutdown.
type Quit struct{}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDocuments lists the registered documents.
	ViewDocuments
	// ViewCompliance is the dividend compliance analysis view.
	ViewCompliance
	// ViewTerms is the fund duration analysis view.
	ViewTerms
	// ViewHistory lists past analyses.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDocuments:
		return "documents"
	case ViewCompliance:
		return "compliance"
	case ViewTerms:
		return "terms"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}
