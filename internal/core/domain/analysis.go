package domain

import "time"

// AnalysisKind identifies one of the two fixed analytical tasks.
type AnalysisKind string

const (
	// AnalysisCompliance compares the fund's internal regulation against
	// the applicable norm for dividend-distribution requirements.
	AnalysisCompliance AnalysisKind = "compliance"

	// AnalysisTerms compares the fund's duration against the maturity
	// date of its CORFO debt.
	AnalysisTerms AnalysisKind = "terms"
)

// Analysis is the stored result of one analysis run. Unlike the
// transcript of an interactive session, it is externally observable:
// history listings and tests read it back from the analysis store.
type Analysis struct {
	// ID is a unique identifier for this run.
	ID string

	// Kind is the analytical task that produced the answer.
	Kind AnalysisKind

	// FundID is the document id of the fund regulation analysed.
	FundID string

	// NormID is the document id of the applicable norm.
	// Empty for kinds that only look at the fund document.
	NormID string

	// Answer is the language model's answer text.
	Answer string

	// CreatedAt is when the analysis completed.
	CreatedAt time.Time
}
