package driven

import (
	"context"

	"github.com/claridad-labs/claridad/internal/core/domain"
)

// VectorIndex stores embedding records and answers tag-filtered
// similarity queries. Backed by a Pinecone index in production and by
// an in-memory implementation in tests.
//
// The identifier space is opaque strings. Implementations must never
// assume ids form a dense integer range.
type VectorIndex interface {
	// Upsert writes records, overwriting any existing record with the
	// same id. The underlying store gives no atomicity across records;
	// on partial failure the returned error reports which sub-writes
	// did not apply.
	Upsert(ctx context.Context, records []domain.VectorRecord) error

	// Query returns at most topK records whose metadata document id
	// equals documentID, ordered by descending similarity to vector.
	// Ties are broken by ascending record id so results are
	// reproducible.
	Query(ctx context.Context, vector []float32, documentID string, topK int) ([]domain.VectorHit, error)

	// ListDocumentIDs enumerates the distinct document ids present in
	// the index by scanning record ids, not by guessing them.
	ListDocumentIDs(ctx context.Context) ([]string, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int, error)

	// Ping validates the index is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
