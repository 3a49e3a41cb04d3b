package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claridad-labs/claridad/internal/adapters/driven/vector/memory"
	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
	"github.com/claridad-labs/claridad/internal/postprocessors/chunker"
)

// writeTestPDF creates an empty file with a .pdf extension. Extraction
// is mocked, so only the path matters.
func writeTestPDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))
	return path
}

func testSplitter(t *testing.T) *chunker.Splitter {
	t.Helper()
	s, err := chunker.New(chunker.WithChunkSize(4), chunker.WithOverlap(1))
	require.NoError(t, err)
	return s
}

func TestIndexFile_FullPipeline(t *testing.T) {
	index := memory.NewIndex()
	docStore := newMockDocStore()
	extractor := &mockExtractor{name: "selectable", text: strings.Repeat("palabra ", 10)}

	svc := NewIndexerService(
		[]driven.TextExtractor{extractor},
		testSplitter(t),
		newMockEmbedder(),
		index,
		docStore,
	)

	path := writeTestPDF(t, "Reglamento Interno 2021.pdf")
	report, err := svc.IndexFile(context.Background(), path, "")
	require.NoError(t, err)

	// 10 words, chunk size 4, overlap 1 -> windows at 0, 3, 6 (last reaches the end).
	assert.Equal(t, 3, report.ChunkCount)
	assert.Equal(t, "selectable", report.Strategy)
	assert.Equal(t, "reglamento_interno_2021", report.Document.ID)
	assert.Equal(t, "Reglamento Interno 2021", report.Document.Title)

	count, err := index.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	saved, err := docStore.GetDocument(context.Background(), "reglamento_interno_2021")
	require.NoError(t, err)
	assert.Equal(t, 3, saved.ChunkCount)
}

func TestIndexFile_ExplicitDocumentID(t *testing.T) {
	extractor := &mockExtractor{name: "selectable", text: "uno dos tres"}
	svc := NewIndexerService(
		[]driven.TextExtractor{extractor},
		testSplitter(t),
		newMockEmbedder(),
		memory.NewIndex(),
		newMockDocStore(),
	)

	path := writeTestPDF(t, "archivo.pdf")
	report, err := svc.IndexFile(context.Background(), path, "fondo_devlabs_20210504")
	require.NoError(t, err)
	assert.Equal(t, "fondo_devlabs_20210504", report.Document.ID)
}

func TestIndexFile_FallsBackToOCR(t *testing.T) {
	selectable := &mockExtractor{name: "selectable", text: "   "}
	ocr := &mockExtractor{name: "ocr", text: "texto reconocido por ocr"}

	svc := NewIndexerService(
		[]driven.TextExtractor{selectable, ocr},
		testSplitter(t),
		newMockEmbedder(),
		memory.NewIndex(),
		newMockDocStore(),
	)

	report, err := svc.IndexFile(context.Background(), writeTestPDF(t, "escaneado.pdf"), "")
	require.NoError(t, err)
	assert.Equal(t, "ocr", report.Strategy)
}

func TestIndexFile_AllStrategiesFail(t *testing.T) {
	selectable := &mockExtractor{name: "selectable", err: errors.New("no text layer")}
	ocr := &mockExtractor{name: "ocr", err: errors.New("tesseract not found")}

	svc := NewIndexerService(
		[]driven.TextExtractor{selectable, ocr},
		testSplitter(t),
		newMockEmbedder(),
		memory.NewIndex(),
		newMockDocStore(),
	)

	_, err := svc.IndexFile(context.Background(), writeTestPDF(t, "roto.pdf"), "")
	require.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "selectable")
	assert.Contains(t, err.Error(), "ocr")
}

func TestIndexFile_RejectsNonPDF(t *testing.T) {
	svc := NewIndexerService(nil, testSplitter(t), newMockEmbedder(), memory.NewIndex(), nil)

	path := filepath.Join(t.TempDir(), "notas.txt")
	require.NoError(t, os.WriteFile(path, []byte("hola"), 0600))

	_, err := svc.IndexFile(context.Background(), path, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexFile_MissingFile(t *testing.T) {
	svc := NewIndexerService(nil, testSplitter(t), newMockEmbedder(), memory.NewIndex(), nil)

	_, err := svc.IndexFile(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexFile_EmbeddingFailureAbortsRun(t *testing.T) {
	embedder := newMockEmbedder()
	embedder.embedErr = errors.New("quota exceeded")
	index := memory.NewIndex()
	docStore := newMockDocStore()

	svc := NewIndexerService(
		[]driven.TextExtractor{&mockExtractor{name: "selectable", text: "uno dos tres cuatro"}},
		testSplitter(t),
		embedder,
		index,
		docStore,
	)

	_, err := svc.IndexFile(context.Background(), writeTestPDF(t, "doc.pdf"), "")
	require.Error(t, err)

	// Nothing partial was written.
	count, err := index.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	_, err = docStore.GetDocument(context.Background(), "doc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIndexFile_InFlightEmbeddingFailureStillReturns(t *testing.T) {
	embedder := newMockEmbedder()
	embedder.embedDelay = 100 * time.Millisecond
	embedder.embedErr = errors.New("service unavailable")
	index := memory.NewIndex()

	// Single worker and single-text batches: the worker fails mid-flight
	// while the producer still has batches queued to send.
	svc := NewIndexerService(
		[]driven.TextExtractor{&mockExtractor{
			name: "selectable",
			text: strings.Repeat("palabra ", 20),
		}},
		testSplitter(t),
		embedder,
		index,
		newMockDocStore(),
		WithWorkers(1),
		WithEmbedBatchSize(1),
	)

	done := make(chan error, 1)
	go func() {
		_, err := svc.IndexFile(context.Background(), writeTestPDF(t, "doc.pdf"), "")
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service unavailable")
	case <-time.After(3 * time.Second):
		t.Fatal("IndexFile did not return after the embedding failure")
	}

	count, err := index.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIndexFile_BatchedEmbedding(t *testing.T) {
	embedder := newMockEmbedder()

	// 100 words, chunk size 4, overlap 1 -> 33 chunks; batch size 10 -> 4 requests.
	svc := NewIndexerService(
		[]driven.TextExtractor{&mockExtractor{name: "selectable", text: strings.Repeat("palabra ", 100)}},
		testSplitter(t),
		embedder,
		memory.NewIndex(),
		nil,
		WithEmbedBatchSize(10),
		WithWorkers(2),
	)

	report, err := svc.IndexFile(context.Background(), writeTestPDF(t, "grande.pdf"), "")
	require.NoError(t, err)
	assert.Equal(t, 33, report.ChunkCount)
	assert.Equal(t, 4, embedder.calls)
}

func TestIndexFile_ReindexOverwrites(t *testing.T) {
	index := memory.NewIndex()
	extractor := &mockExtractor{name: "selectable", text: "uno dos tres cuatro cinco"}
	svc := NewIndexerService(
		[]driven.TextExtractor{extractor},
		testSplitter(t),
		newMockEmbedder(),
		index,
		newMockDocStore(),
	)

	path := writeTestPDF(t, "doc.pdf")
	_, err := svc.IndexFile(context.Background(), path, "")
	require.NoError(t, err)
	_, err = svc.IndexFile(context.Background(), path, "")
	require.NoError(t, err)

	count, err := index.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	ids, err := svc.ListIndexedIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"doc"}, ids)
}
