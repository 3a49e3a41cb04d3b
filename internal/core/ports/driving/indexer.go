package driving

import (
	"context"

	"github.com/claridad-labs/claridad/internal/core/domain"
)

// IndexerService ingests regulatory PDFs into the vector index.
type IndexerService interface {
	// IndexFile extracts, chunks, embeds and upserts one PDF under the
	// given document id. An empty id derives one from the filename.
	// Indexing is all-or-nothing per document: the first failure aborts
	// the run and nothing partial is recorded in the local registry.
	IndexFile(ctx context.Context, path, documentID string) (*IndexReport, error)

	// ListDocuments returns the locally registered documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// ListIndexedIDs enumerates document ids present in the vector
	// index itself, which may differ from the local registry when the
	// index is shared or the registry was rebuilt.
	ListIndexedIDs(ctx context.Context) ([]string, error)
}

// IndexReport summarises one indexing run.
type IndexReport struct {
	// Document is the registry entry written for the run.
	Document domain.Document

	// ChunkCount is the number of chunks embedded and upserted.
	ChunkCount int

	// Strategy is the extraction strategy that produced the text.
	Strategy string
}
