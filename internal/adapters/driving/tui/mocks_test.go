package tui

import (
	"context"

	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	analysis *domain.Analysis
	history  []domain.Analysis
	err      error
}

func (m *mockAnalysisService) AnalyzeCompliance(_ context.Context, _, _ string) (*domain.Analysis, error) {
	return m.analysis, m.err
}

func (m *mockAnalysisService) AnalyzeTerms(_ context.Context, _ string) (*domain.Analysis, error) {
	return m.analysis, m.err
}

func (m *mockAnalysisService) History(_ context.Context, _ int) ([]domain.Analysis, error) {
	return m.history, m.err
}

// mockIndexerService is a mock implementation of driving.IndexerService.
type mockIndexerService struct {
	report    *driving.IndexReport
	documents []domain.Document
	ids       []string
	err       error
}

func (m *mockIndexerService) IndexFile(_ context.Context, _, _ string) (*driving.IndexReport, error) {
	return m.report, m.err
}

func (m *mockIndexerService) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockIndexerService) ListIndexedIDs(_ context.Context) ([]string, error) {
	return m.ids, m.err
}
