package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ComplianceInput is the input schema for the analyze_compliance tool.
type ComplianceInput struct {
	FundID string `json:"fund_id" jsonschema:"document ID of the indexed internal fund regulation"`
	NormID string `json:"norm_id" jsonschema:"document ID of the indexed CORFO norm"`
}

// TermsInput is the input schema for the analyze_terms tool.
type TermsInput struct {
	FundID string `json:"fund_id" jsonschema:"document ID of the indexed internal fund regulation"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// DocumentOutput describes one indexed document.
type DocumentOutput struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Strategy   string `json:"strategy"`
	ChunkCount int    `json:"chunk_count"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// AnalysisOutput is the output schema shared by both analysis tools.
type AnalysisOutput struct {
	AnalysisID string `json:"analysis_id"`
	Kind       string `json:"kind"`
	FundID     string `json:"fund_id"`
	NormID     string `json:"norm_id,omitempty"`
	Answer     string `json:"answer"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_compliance",
		Description: "Compare a fund's dividend distribution rules against a CORFO norm and report compliance",
	}, s.handleAnalyzeCompliance)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_terms",
		Description: "Check whether a fund's duration covers the maturity of its CORFO debt",
	}, s.handleAnalyzeTerms)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the indexed documents available for analysis",
	}, s.handleListDocuments)
}

// handleAnalyzeCompliance handles the analyze_compliance tool invocation.
func (s *Server) handleAnalyzeCompliance(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ComplianceInput,
) (*mcp.CallToolResult, AnalysisOutput, error) {
	analysis, err := s.ports.Analysis.AnalyzeCompliance(ctx, input.FundID, input.NormID)
	if err != nil {
		return nil, AnalysisOutput{}, err
	}

	return nil, AnalysisOutput{
		AnalysisID: analysis.ID,
		Kind:       string(analysis.Kind),
		FundID:     analysis.FundID,
		NormID:     analysis.NormID,
		Answer:     analysis.Answer,
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Indexer == nil {
		return nil, ListDocumentsOutput{Documents: []DocumentOutput{}}, nil
	}

	docs, err := s.ports.Indexer.ListDocuments(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = DocumentOutput{
			ID:         docs[i].ID,
			Title:      docs[i].Title,
			Strategy:   docs[i].Strategy,
			ChunkCount: docs[i].ChunkCount,
		}
	}

	return nil, output, nil
}

// handleAnalyzeTerms handles the analyze_terms tool invocation.
func (s *Server) handleAnalyzeTerms(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TermsInput,
) (*mcp.CallToolResult, AnalysisOutput, error) {
	analysis, err := s.ports.Analysis.AnalyzeTerms(ctx, input.FundID)
	if err != nil {
		return nil, AnalysisOutput{}, err
	}

	return nil, AnalysisOutput{
		AnalysisID: analysis.ID,
		Kind:       string(analysis.Kind),
		FundID:     analysis.FundID,
		Answer:     analysis.Answer,
	}, nil
}
