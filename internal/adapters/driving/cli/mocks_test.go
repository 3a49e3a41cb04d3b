package cli

import (
	"context"

	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
)

// mockIndexerService is a mock implementation of driving.IndexerService.
type mockIndexerService struct {
	report    *driving.IndexReport
	documents []domain.Document
	ids       []string
	err       error

	lastPath string
	lastID   string
}

func (m *mockIndexerService) IndexFile(_ context.Context, path, documentID string) (*driving.IndexReport, error) {
	m.lastPath = path
	m.lastID = documentID
	return m.report, m.err
}

func (m *mockIndexerService) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockIndexerService) ListIndexedIDs(_ context.Context) ([]string, error) {
	return m.ids, m.err
}

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	analysis *domain.Analysis
	history  []domain.Analysis
	err      error

	lastFundID string
	lastNormID string
}

func (m *mockAnalysisService) AnalyzeCompliance(_ context.Context, fundID, normID string) (*domain.Analysis, error) {
	m.lastFundID = fundID
	m.lastNormID = normID
	return m.analysis, m.err
}

func (m *mockAnalysisService) AnalyzeTerms(_ context.Context, fundID string) (*domain.Analysis, error) {
	m.lastFundID = fundID
	return m.analysis, m.err
}

func (m *mockAnalysisService) History(_ context.Context, _ int) ([]domain.Analysis, error) {
	return m.history, m.err
}
