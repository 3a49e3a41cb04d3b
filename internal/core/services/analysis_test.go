package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claridad-labs/claridad/internal/adapters/driven/vector/memory"
	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
	"github.com/claridad-labs/claridad/internal/postprocessors/chunker"
)

func newAnalysisFixture(t *testing.T) (*AnalysisService, *memory.Index, *mockLLM, *mockAnalysisStore) {
	t.Helper()
	index := memory.NewIndex()
	llm := &mockLLM{answer: "El Fondo cumple con los requisitos."}
	store := &mockAnalysisStore{}
	svc := NewAnalysisService(NewRetriever(newMockEmbedder(), index, 4), llm, store)
	return svc, index, llm, store
}

func TestAnalyzeCompliance(t *testing.T) {
	svc, index, llm, store := newAnalysisFixture(t)
	seedIndex(t, index, "fondo_a", "el reglamento regula el reparto de dividendos")
	seedIndex(t, index, "norma_b", "la norma exige beneficio neto percibido")

	got, err := svc.AnalyzeCompliance(context.Background(), "fondo_a", "norma_b")
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisCompliance, got.Kind)
	assert.Equal(t, "fondo_a", got.FundID)
	assert.Equal(t, "norma_b", got.NormID)
	assert.Equal(t, "El Fondo cumple con los requisitos.", got.Answer)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	// The model saw the fixed system prompt and both contexts.
	assert.Equal(t, SystemPrompt, llm.lastSystem)
	assert.Contains(t, llm.lastUser, "el reglamento regula el reparto de dividendos")
	assert.Contains(t, llm.lastUser, "la norma exige beneficio neto percibido")

	// The run was persisted.
	history, err := store.ListAnalyses(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, got.ID, history[0].ID)
}

func TestAnalyzeCompliance_RequiresBothIDs(t *testing.T) {
	svc, _, _, _ := newAnalysisFixture(t)

	_, err := svc.AnalyzeCompliance(context.Background(), "", "norma_b")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AnalyzeCompliance(context.Background(), "fondo_a", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalyzeCompliance_NoContext(t *testing.T) {
	svc, _, _, store := newAnalysisFixture(t)

	_, err := svc.AnalyzeCompliance(context.Background(), "fondo_a", "norma_b")
	require.ErrorIs(t, err, domain.ErrNoContext)

	history, err := store.ListAnalyses(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAnalyzeCompliance_OneSidedContextStillRuns(t *testing.T) {
	svc, index, llm, _ := newAnalysisFixture(t)
	seedIndex(t, index, "fondo_a", "solo hay contexto del reglamento")

	got, err := svc.AnalyzeCompliance(context.Background(), "fondo_a", "norma_b")
	require.NoError(t, err)
	assert.NotEmpty(t, got.Answer)
	assert.Contains(t, llm.lastUser, "solo hay contexto del reglamento")
}

func TestAnalyzeTerms(t *testing.T) {
	svc, index, llm, _ := newAnalysisFixture(t)
	seedIndex(t, index, "fondo_a",
		"el plazo de duración del fondo es de diez años",
		"la deuda con CORFO vence el año 2031")

	got, err := svc.AnalyzeTerms(context.Background(), "fondo_a")
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisTerms, got.Kind)
	assert.Equal(t, "fondo_a", got.FundID)
	assert.Empty(t, got.NormID)
	assert.Contains(t, llm.lastUser, "Plazo de Duración del Fondo")
	assert.Contains(t, llm.lastUser, "Vencimiento en el Pago de la Deuda con CORFO")
}

func TestAnalyzeTerms_NoContext(t *testing.T) {
	svc, _, _, _ := newAnalysisFixture(t)

	_, err := svc.AnalyzeTerms(context.Background(), "fondo_a")
	assert.ErrorIs(t, err, domain.ErrNoContext)
}

func TestAnalyze_LLMFailure(t *testing.T) {
	svc, index, llm, store := newAnalysisFixture(t)
	seedIndex(t, index, "fondo_a", "contexto")
	llm.completeErr = errors.New("model overloaded")

	_, err := svc.AnalyzeTerms(context.Background(), "fondo_a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "complete analysis")

	history, err := store.ListAnalyses(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHistory_NewestFirst(t *testing.T) {
	svc, index, _, _ := newAnalysisFixture(t)
	seedIndex(t, index, "fondo_a", "contexto del fondo")
	seedIndex(t, index, "norma_b", "contexto de la norma")

	first, err := svc.AnalyzeCompliance(context.Background(), "fondo_a", "norma_b")
	require.NoError(t, err)
	second, err := svc.AnalyzeTerms(context.Background(), "fondo_a")
	require.NoError(t, err)

	history, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)

	limited, err := svc.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}

// TestPipeline_IndexThenAnalyze drives the full path: index two fake
// documents into the shared in-memory index, then run both analyses
// against what indexing stored.
func TestPipeline_IndexThenAnalyze(t *testing.T) {
	ctx := context.Background()
	index := memory.NewIndex()
	embedder := newMockEmbedder()
	docStore := newMockDocStore()

	splitter, err := chunker.New(chunker.WithChunkSize(6), chunker.WithOverlap(2))
	require.NoError(t, err)

	fundText := strings.Repeat("reglamento interno reparto de dividendos ", 4)
	normText := strings.Repeat("normativa aplicable requisitos beneficio neto ", 4)

	extractor := &mockExtractor{name: "selectable", text: fundText}
	indexer := NewIndexerService(
		[]driven.TextExtractor{extractor},
		splitter,
		embedder,
		index,
		docStore,
	)

	_, err = indexer.IndexFile(ctx, writeTestPDF(t, "Reglamento Fondo A.pdf"), "fondo_a")
	require.NoError(t, err)

	extractor.text = normText
	_, err = indexer.IndexFile(ctx, writeTestPDF(t, "Norma FET 138.pdf"), "norma_b")
	require.NoError(t, err)

	ids, err := indexer.ListIndexedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fondo_a", "norma_b"}, ids)

	llm := &mockLLM{answer: "Cumple."}
	analysis := NewAnalysisService(NewRetriever(embedder, index, 4), llm, &mockAnalysisStore{})

	compliance, err := analysis.AnalyzeCompliance(ctx, "fondo_a", "norma_b")
	require.NoError(t, err)
	assert.Equal(t, "Cumple.", compliance.Answer)
	assert.Contains(t, llm.lastUser, "reglamento interno")
	assert.Contains(t, llm.lastUser, "normativa aplicable")

	terms, err := analysis.AnalyzeTerms(ctx, "fondo_a")
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisTerms, terms.Kind)
}
