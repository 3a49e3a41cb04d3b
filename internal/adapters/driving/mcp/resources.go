package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Claridad resources.
	uriScheme = "claridad://"

	// historyLimit caps the number of analyses exposed over the history resource.
	historyLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Locally registered documents with their indexing metadata",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index/documents",
		Name:        "index-documents",
		Description: "Document IDs currently present in the vector index",
		MIMEType:    "application/json",
	}, s.handleIndexDocumentsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "analyses",
		Name:        "analyses",
		Description: "Most recent analysis results, newest first",
		MIMEType:    "application/json",
	}, s.handleAnalysesResource)
}

// handleDocumentsResource returns the locally registered documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Indexer == nil {
		return emptyListResult(req.Params.URI), nil
	}

	docs, err := s.ports.Indexer.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type docInfo struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		Strategy   string `json:"strategy"`
		ChunkCount int    `json:"chunk_count"`
		IndexedAt  string `json:"indexed_at"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:         docs[i].ID,
			Title:      docs[i].Title,
			Strategy:   docs[i].Strategy,
			ChunkCount: docs[i].ChunkCount,
			IndexedAt:  docs[i].IndexedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleIndexDocumentsResource returns the document IDs known to the vector index.
func (s *Server) handleIndexDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Indexer == nil {
		return emptyListResult(req.Params.URI), nil
	}

	ids, err := s.ports.Indexer.ListIndexedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing indexed ids: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}

	return jsonResult(req.Params.URI, ids)
}

// handleAnalysesResource returns the most recent analyses.
func (s *Server) handleAnalysesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	analyses, err := s.ports.Analysis.History(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}

	type analysisInfo struct {
		ID        string `json:"id"`
		Kind      string `json:"kind"`
		FundID    string `json:"fund_id"`
		NormID    string `json:"norm_id,omitempty"`
		Answer    string `json:"answer"`
		CreatedAt string `json:"created_at"`
	}

	infos := make([]analysisInfo, len(analyses))
	for i := range analyses {
		infos[i] = analysisInfo{
			ID:        analyses[i].ID,
			Kind:      string(analyses[i].Kind),
			FundID:    analyses[i].FundID,
			NormID:    analyses[i].NormID,
			Answer:    analyses[i].Answer,
			CreatedAt: analyses[i].CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return jsonResult(req.Params.URI, infos)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func emptyListResult(uri string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     "[]",
		}},
	}
}
