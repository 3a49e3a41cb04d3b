package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
	"github.com/claridad-labs/claridad/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs the two fixed analyses: dividend-distribution
// compliance and fund duration versus CORFO debt maturity. Each run
// retrieves context from the vector index, renders a fixed prompt,
// queries the model and persists the result.
type AnalysisService struct {
	retriever     *Retriever
	llm           driven.LLMService
	analysisStore driven.AnalysisStore
}

// NewAnalysisService creates an analysis service. The analysis store is
// optional; without it results are returned but not persisted.
func NewAnalysisService(
	retriever *Retriever,
	llm driven.LLMService,
	analysisStore driven.AnalysisStore,
) *AnalysisService {
	return &AnalysisService{
		retriever:     retriever,
		llm:           llm,
		analysisStore: analysisStore,
	}
}

// AnalyzeCompliance answers whether the fund meets the requirements for
// distributing definitive and provisional dividends. Both contexts use
// the same search phrase: dividend clauses from the fund regulation and
// the corresponding requirements from the norm.
func (s *AnalysisService) AnalyzeCompliance(ctx context.Context, fundID, normID string) (*domain.Analysis, error) {
	logger.Section("Compliance Analysis")
	logger.Debug("Fund: %s, Norm: %s", fundID, normID)

	if fundID == "" || normID == "" {
		return nil, fmt.Errorf("%w: fund and norm document ids are required", domain.ErrInvalidInput)
	}

	fundContext, err := s.retriever.RetrieveContext(ctx, fundID, SearchDividends)
	if err != nil {
		return nil, fmt.Errorf("retrieve fund context: %w", err)
	}
	normContext, err := s.retriever.RetrieveContext(ctx, normID, SearchDividends)
	if err != nil {
		return nil, fmt.Errorf("retrieve norm context: %w", err)
	}

	if isBlank(fundContext) && isBlank(normContext) {
		return nil, fmt.Errorf("%w: neither %s nor %s yielded context", domain.ErrNoContext, fundID, normID)
	}

	prompt := BuildCompliancePrompt(fundContext, normContext)
	answer, err := s.llm.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete analysis: %w", err)
	}

	return s.record(ctx, domain.Analysis{
		ID:        uuid.NewString(),
		Kind:      domain.AnalysisCompliance,
		FundID:    fundID,
		NormID:    normID,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	})
}

// AnalyzeTerms reports the fund's duration and the maturity date of its
// CORFO debt. Both contexts come from the fund document, retrieved with
// different search phrases.
func (s *AnalysisService) AnalyzeTerms(ctx context.Context, fundID string) (*domain.Analysis, error) {
	logger.Section("Terms Analysis")
	logger.Debug("Fund: %s", fundID)

	if fundID == "" {
		return nil, fmt.Errorf("%w: fund document id is required", domain.ErrInvalidInput)
	}

	durationContext, err := s.retriever.RetrieveContext(ctx, fundID, SearchFundDuration)
	if err != nil {
		return nil, fmt.Errorf("retrieve duration context: %w", err)
	}
	maturityContext, err := s.retriever.RetrieveContext(ctx, fundID, SearchDebtMaturity)
	if err != nil {
		return nil, fmt.Errorf("retrieve maturity context: %w", err)
	}

	if isBlank(durationContext) && isBlank(maturityContext) {
		return nil, fmt.Errorf("%w: %s yielded no context", domain.ErrNoContext, fundID)
	}

	prompt := BuildTermsPrompt(durationContext, maturityContext)
	answer, err := s.llm.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete analysis: %w", err)
	}

	return s.record(ctx, domain.Analysis{
		ID:        uuid.NewString(),
		Kind:      domain.AnalysisTerms,
		FundID:    fundID,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	})
}

// History returns past analyses, newest first.
func (s *AnalysisService) History(ctx context.Context, limit int) ([]domain.Analysis, error) {
	if s.analysisStore == nil {
		return nil, nil
	}
	return s.analysisStore.ListAnalyses(ctx, limit)
}

// record persists the analysis when a store is configured.
func (s *AnalysisService) record(ctx context.Context, a domain.Analysis) (*domain.Analysis, error) {
	if s.analysisStore != nil {
		if err := s.analysisStore.SaveAnalysis(ctx, a); err != nil {
			return nil, fmt.Errorf("save analysis: %w", err)
		}
	}
	logger.Info("Analysis %s complete (%s)", a.ID, a.Kind)
	return &a, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
