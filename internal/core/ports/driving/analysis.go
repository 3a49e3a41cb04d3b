package driving

import (
	"context"

	"github.com/claridad-labs/claridad/internal/core/domain"
)

// AnalysisService runs the two fixed analytical tasks. The fund and
// norm identifiers are explicit parameters threaded from the caller's
// selection; they are never hidden constants.
type AnalysisService interface {
	// AnalyzeCompliance compares the fund's internal regulation with
	// the applicable norm and answers whether the fund meets the
	// requirements for distributing definitive and provisional
	// dividends.
	AnalyzeCompliance(ctx context.Context, fundID, normID string) (*domain.Analysis, error)

	// AnalyzeTerms reports the fund's duration, the maturity date of
	// its CORFO debt, and any discrepancy between the two.
	AnalyzeTerms(ctx context.Context, fundID string) (*domain.Analysis, error)

	// History returns past analyses, newest first.
	History(ctx context.Context, limit int) ([]domain.Analysis, error)
}
