// Package chunker splits extracted document text into overlapping
// fixed-size word windows, the retrieval unit for indexing.
package chunker

import (
	"strings"

	"github.com/claridad-labs/claridad/internal/core/domain"
)

// DefaultChunkSize is the default number of words per chunk.
const DefaultChunkSize = 200

// DefaultOverlap is the default number of overlapping words.
const DefaultOverlap = 50

// Splitter produces overlapping word-window chunks for a document.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in words.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in words.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter. Overlap must be strictly smaller than the
// chunk size, otherwise the window would never advance; that
// configuration is rejected with domain.ErrInvalidChunking rather than
// silently clamped.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.overlap >= s.chunkSize {
		return nil, domain.ErrInvalidChunking
	}

	return s, nil
}

// ChunkSize returns the configured window size in words.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap in words.
func (s *Splitter) Overlap() int { return s.overlap }

// Split cuts text into chunks for the given document id. Starting at
// word 0 it takes chunkSize words and advances by chunkSize-overlap
// until the start passes the word count. The final chunk may be
// shorter. Empty or all-whitespace text produces no chunks; any other
// text produces at least one.
func (s *Splitter) Split(documentID, text string) []domain.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := s.chunkSize - s.overlap
	estimated := (len(words) / step) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	for start, index := 0, 0; start < len(words); start, index = start+step, index+1 {
		end := start + s.chunkSize
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, domain.Chunk{
			DocumentID: documentID,
			Index:      index,
			Text:       strings.Join(words[start:end], " "),
		})

		// A window that reaches the end covers the remaining words;
		// a further window would be a redundant suffix of this one.
		if end == len(words) {
			break
		}
	}

	return chunks
}
