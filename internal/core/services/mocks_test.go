package services

import (
	"context"
	"sync"
	"time"

	"github.com/claridad-labs/claridad/internal/core/domain"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing. Known
// texts map to fixed vectors; everything else gets the default vector.
type mockEmbedder struct {
	mu         sync.Mutex
	vectors    map[string][]float32
	fallback   []float32
	embedErr   error
	embedDelay time.Duration
	calls      int
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{
		vectors:  make(map[string][]float32),
		fallback: []float32{1, 0, 0},
	}
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	delay := m.embedDelay
	m.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.vectors[text]; ok {
			result[i] = v
		} else {
			result[i] = m.fallback
		}
	}
	return result, nil
}

func (m *mockEmbedder) Dimensions() int      { return len(m.fallback) }
func (m *mockEmbedder) ModelName() string    { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error         { return nil }

// mockLLM implements driven.LLMService for testing. It records the
// prompts it saw and echoes a canned answer.
type mockLLM struct {
	answer      string
	completeErr error

	lastSystem string
	lastUser   string
}

func (m *mockLLM) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	if m.completeErr != nil {
		return "", m.completeErr
	}
	return m.answer, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockExtractor implements driven.TextExtractor for testing.
type mockExtractor struct {
	name string
	text string
	err  error
}

func (m *mockExtractor) Name() string { return m.name }

func (m *mockExtractor) Extract(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// mockDocStore implements driven.DocumentStore for testing.
type mockDocStore struct {
	mu      sync.Mutex
	docs    map[string]domain.Document
	saveErr error
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{docs: make(map[string]domain.Document)}
}

func (m *mockDocStore) SaveDocument(_ context.Context, doc domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockDocStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *mockDocStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

// mockAnalysisStore implements driven.AnalysisStore for testing.
type mockAnalysisStore struct {
	mu       sync.Mutex
	analyses []domain.Analysis
	saveErr  error
}

func (m *mockAnalysisStore) SaveAnalysis(_ context.Context, a domain.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.analyses = append(m.analyses, a)
	return nil
}

func (m *mockAnalysisStore) ListAnalyses(_ context.Context, limit int) ([]domain.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Analysis, len(m.analyses))
	copy(out, m.analyses)
	// Newest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
