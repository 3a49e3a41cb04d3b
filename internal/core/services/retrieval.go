package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/claridad-labs/claridad/internal/core/ports/driven"
	"github.com/claridad-labs/claridad/internal/logger"
)

// DefaultTopK is the number of chunks retrieved per context.
const DefaultTopK = 4

// Retriever fetches tag-scoped context for a query: it embeds the query,
// runs a similarity search restricted to one document, and joins the
// matching chunk texts. Both analyses are built on it.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	topK     int
}

// NewRetriever creates a retriever. A topK of zero or less falls back
// to DefaultTopK.
func NewRetriever(embedder driven.EmbeddingService, index driven.VectorIndex, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
	}
}

// RetrieveContext returns the concatenated text of the chunks from
// documentID most similar to query. An empty result is not an error;
// the caller decides whether an analysis can proceed without context.
func (r *Retriever) RetrieveContext(ctx context.Context, documentID, query string) (string, error) {
	logger.Debug("Retrieving context for %q: %q", documentID, query)

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.index.Query(ctx, vector, documentID, r.topK)
	if err != nil {
		return "", fmt.Errorf("query index: %w", err)
	}
	logger.Debug("Retrieved %d chunks for %q", len(hits), documentID)

	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Metadata.Text == "" {
			continue
		}
		texts = append(texts, hit.Metadata.Text)
	}

	return strings.Join(texts, "\n"), nil
}
