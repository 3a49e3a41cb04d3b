package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Document represents an indexed regulatory PDF. It is either a fund's
// internal regulation (reglamento interno) or an external norm that
// applies to the fund (normativa aplicable).
type Document struct {
	// ID is the unique identifier, stable across re-indexing.
	// It doubles as the tag used to scope vector queries.
	ID string

	// Title is the human-readable title.
	Title string

	// Path is the location of the source PDF on disk.
	Path string

	// Strategy records how text was extracted ("selectable" or "ocr").
	Strategy string

	// ChunkCount is the number of chunks produced at indexing time.
	ChunkCount int

	// IndexedAt is when the document was last indexed.
	IndexedAt time.Time
}

// DocumentIDFromPath derives a stable document id from a PDF filename.
// "Reglamento Interno 2021.pdf" becomes "reglamento_interno_2021".
func DocumentIDFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

// Chunk is a contiguous span of words from a document's extracted text.
// Chunks are the retrieval unit: each one is embedded and stored in the
// vector index under a VectorID unique across the whole index.
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the ordinal position within the document, 0-based.
	Index int

	// Text is the word span.
	Text string
}

// VectorID returns the identifier under which this chunk is stored in
// the vector index. Re-indexing the same document overwrites colliding
// ids; the identifier space is opaque strings, never a dense range.
func (c Chunk) VectorID() string {
	return fmt.Sprintf("%s_%d", c.DocumentID, c.Index)
}

// VectorRecord is the persisted unit in the vector index:
// an id, an embedding and the chunk metadata. The index owns the record;
// no other component retains a copy after upsert.
type VectorRecord struct {
	ID        string
	Embedding []float32
	Metadata  ChunkMetadata
}

// ChunkMetadata is the metadata stored alongside each vector.
type ChunkMetadata struct {
	DocumentID string `json:"document_id"`
	ChunkID    int    `json:"chunk_id"`
	Text       string `json:"text"`
}

// VectorHit is a single result of a similarity query.
type VectorHit struct {
	ID       string
	Score    float64
	Metadata ChunkMetadata
}
