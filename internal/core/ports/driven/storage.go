package driven

import (
	"context"

	"github.com/claridad-labs/claridad/internal/core/domain"
)

// DocumentStore is the local registry of indexed documents. It mirrors
// what the vector index holds so the front end can distinguish "nothing
// indexed yet" without a network round trip.
type DocumentStore interface {
	// SaveDocument inserts or replaces the registry entry for a document.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// GetDocument retrieves a registry entry by id.
	// Returns domain.ErrNotFound when absent.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all registry entries ordered by id.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}

// AnalysisStore persists analysis results so history survives the
// interactive session that produced it.
type AnalysisStore interface {
	// SaveAnalysis appends one analysis result.
	SaveAnalysis(ctx context.Context, a domain.Analysis) error

	// ListAnalyses returns stored results, newest first, at most limit
	// entries (all of them when limit <= 0).
	ListAnalyses(ctx context.Context, limit int) ([]domain.Analysis, error)
}
