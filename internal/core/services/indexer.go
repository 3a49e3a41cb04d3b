package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
	"github.com/claridad-labs/claridad/internal/logger"
	"github.com/claridad-labs/claridad/internal/postprocessors/chunker"
)

// Ensure IndexerService implements the interface.
var _ driving.IndexerService = (*IndexerService)(nil)

// Indexing defaults.
const (
	// DefaultEmbedBatchSize is how many chunk texts go into one
	// embedding request.
	DefaultEmbedBatchSize = 64

	// DefaultWorkers bounds concurrent embedding requests.
	DefaultWorkers = 4
)

// IndexerService ingests PDFs: extract, chunk, embed, upsert, register.
// Extraction strategies are tried in order; the first one that yields
// text wins, so a digital PDF never pays the OCR cost.
type IndexerService struct {
	extractors []driven.TextExtractor
	splitter   *chunker.Splitter
	embedder   driven.EmbeddingService
	index      driven.VectorIndex
	docStore   driven.DocumentStore

	batchSize int
	workers   int
}

// IndexerOption customises the indexer.
type IndexerOption func(*IndexerService)

// WithEmbedBatchSize sets the number of texts per embedding request.
func WithEmbedBatchSize(n int) IndexerOption {
	return func(s *IndexerService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithWorkers bounds the number of concurrent embedding requests.
func WithWorkers(n int) IndexerOption {
	return func(s *IndexerService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewIndexerService creates an indexer. Extractors are tried in the
// order given. The document store is optional; without it indexing
// still works but nothing is recorded locally.
func NewIndexerService(
	extractors []driven.TextExtractor,
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	docStore driven.DocumentStore,
	opts ...IndexerOption,
) *IndexerService {
	s := &IndexerService{
		extractors: extractors,
		splitter:   splitter,
		embedder:   embedder,
		index:      index,
		docStore:   docStore,
		batchSize:  DefaultEmbedBatchSize,
		workers:    DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IndexFile runs the full pipeline for one PDF. The run is
// all-or-nothing: any failure aborts before the registry is written, so
// a half-indexed document never appears as available.
func (s *IndexerService) IndexFile(ctx context.Context, path, documentID string) (*driving.IndexReport, error) {
	logger.Section("Indexing")
	logger.Debug("File: %s", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s is not a PDF", domain.ErrInvalidInput, path)
	}

	if documentID == "" {
		documentID = domain.DocumentIDFromPath(path)
	}
	if documentID == "" {
		return nil, fmt.Errorf("%w: cannot derive a document id from %q", domain.ErrInvalidInput, path)
	}
	logger.Debug("Document id: %s", documentID)

	text, strategy, err := s.extract(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Info("Extracted %d characters via %s", len(text), strategy)

	chunks := s.splitter.Split(documentID, text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s produced no text", domain.ErrExtractionFailed, path)
	}
	logger.Info("Split into %d chunks", len(chunks))

	records, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	if err := s.index.Upsert(ctx, records); err != nil {
		return nil, fmt.Errorf("upsert vectors: %w", err)
	}
	logger.Info("Upserted %d vectors", len(records))

	doc := domain.Document{
		ID:         documentID,
		Title:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:       path,
		Strategy:   strategy,
		ChunkCount: len(chunks),
		IndexedAt:  time.Now().UTC(),
	}
	if s.docStore != nil {
		if err := s.docStore.SaveDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("register document: %w", err)
		}
	}

	return &driving.IndexReport{
		Document:   doc,
		ChunkCount: len(chunks),
		Strategy:   strategy,
	}, nil
}

// extract tries each extraction strategy in order and returns the first
// non-empty text together with the strategy name.
func (s *IndexerService) extract(ctx context.Context, path string) (string, string, error) {
	var errs []error
	for _, ex := range s.extractors {
		text, err := ex.Extract(ctx, path)
		if err != nil {
			logger.Warn("Extractor %s failed: %v", ex.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", ex.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			logger.Debug("Extractor %s found no text, trying next", ex.Name())
			continue
		}
		return text, ex.Name(), nil
	}

	if len(errs) > 0 {
		return "", "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, errors.Join(errs...))
	}
	return "", "", fmt.Errorf("%w: no strategy found text in %s", domain.ErrExtractionFailed, path)
}

// embedChunks embeds all chunk texts with a bounded worker pool and
// assembles the vector records in chunk order.
func (s *IndexerService) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]domain.VectorRecord, error) {
	type batch struct {
		start int
		texts []string
	}

	var batches []batch
	for start := 0; start < len(chunks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		texts := make([]string, end-start)
		for i, c := range chunks[start:end] {
			texts[i] = c.Text
		}
		batches = append(batches, batch{start: start, texts: texts})
	}

	embeddings := make([][]float32, len(chunks))
	batchCh := make(chan batch)

	workers := s.workers
	if workers > len(batches) {
		workers = len(batches)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Workers keep draining after a failure so the producer is
			// never left blocked on a channel nobody reads.
			for b := range batchCh {
				mu.Lock()
				failed := firstErr != nil
				mu.Unlock()
				if failed {
					continue
				}
				vectors, err := s.embedder.EmbedBatch(ctx, b.texts)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("embed chunks %d..%d: %w", b.start, b.start+len(b.texts)-1, err)
					}
					mu.Unlock()
					continue
				}
				for i, v := range vectors {
					embeddings[b.start+i] = v
				}
			}
		}()
	}

loop:
	for _, b := range batches {
		mu.Lock()
		failed := firstErr != nil
		mu.Unlock()
		if failed {
			break
		}
		select {
		case <-ctx.Done():
			mu.Lock()
			if firstErr == nil {
				firstErr = ctx.Err()
			}
			mu.Unlock()
			break loop
		case batchCh <- b:
		}
	}
	close(batchCh)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	records := make([]domain.VectorRecord, len(chunks))
	for i, c := range chunks {
		records[i] = domain.VectorRecord{
			ID:        c.VectorID(),
			Embedding: embeddings[i],
			Metadata: domain.ChunkMetadata{
				DocumentID: c.DocumentID,
				ChunkID:    c.Index,
				Text:       c.Text,
			},
		}
	}
	return records, nil
}

// ListDocuments returns the locally registered documents.
func (s *IndexerService) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, nil
	}
	return s.docStore.ListDocuments(ctx)
}

// ListIndexedIDs enumerates document ids present in the vector index.
func (s *IndexerService) ListIndexedIDs(ctx context.Context) ([]string, error) {
	return s.index.ListDocumentIDs(ctx)
}
