// Package memory provides an in-memory VectorIndex using brute-force
// cosine similarity. It backs tests and fully offline runs.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores records in a map keyed by vector id.
type Index struct {
	mu      sync.RWMutex
	records map[string]domain.VectorRecord
}

// NewIndex creates an empty in-memory vector index.
func NewIndex() *Index {
	return &Index{records: make(map[string]domain.VectorRecord)}
}

// Upsert writes records, overwriting colliding ids.
func (x *Index) Upsert(_ context.Context, records []domain.VectorRecord) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, r := range records {
		x.records[r.ID] = r
	}
	return nil
}

// Query returns the topK records for the document, ordered by
// descending cosine similarity. Ties break by ascending record id so
// results are reproducible.
func (x *Index) Query(_ context.Context, vector []float32, documentID string, topK int) ([]domain.VectorHit, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if topK <= 0 {
		topK = 3
	}

	hits := make([]domain.VectorHit, 0, len(x.records))
	for _, r := range x.records {
		if r.Metadata.DocumentID != documentID {
			continue
		}
		hits = append(hits, domain.VectorHit{
			ID:       r.ID,
			Score:    cosine(vector, r.Embedding),
			Metadata: r.Metadata,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})

	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, nil
}

// ListDocumentIDs enumerates distinct document ids across all records.
func (x *Index) ListDocumentIDs(_ context.Context) ([]string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, r := range x.records {
		seen[r.Metadata.DocumentID] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Count returns the number of stored records.
func (x *Index) Count(_ context.Context) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.records), nil
}

// Ping always succeeds for the in-memory index.
func (x *Index) Ping(_ context.Context) error { return nil }

// Close releases nothing.
func (x *Index) Close() error { return nil }

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
