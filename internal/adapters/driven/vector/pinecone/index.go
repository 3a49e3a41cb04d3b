// Package pinecone provides a VectorIndex adapter for the Pinecone
// data-plane REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
	"github.com/claridad-labs/claridad/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultBatchSize = 100

	maxRetries     = 4
	baseRetryDelay = 250 * time.Millisecond
	maxRetryDelay  = 5 * time.Second
)

// Config holds configuration for the Pinecone index adapter.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// Host is the index host, e.g.
	// https://reglamentos-abc123.svc.us-east-1-aws.pinecone.io (required).
	Host string

	// Namespace scopes all operations; empty uses the default namespace.
	Namespace string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// BatchSize is the number of vectors per upsert request
	// (default: 100).
	BatchSize int
}

// Index talks to one Pinecone index over REST.
type Index struct {
	client    *http.Client
	host      string
	apiKey    string
	namespace string
	batchSize int
}

// NewIndex creates a Pinecone index adapter.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required: %w", domain.ErrInvalidConfig)
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone: index host is required: %w", domain.ErrInvalidConfig)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	return &Index{
		client:    &http.Client{Timeout: cfg.Timeout},
		host:      strings.TrimSuffix(cfg.Host, "/"),
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
		batchSize: cfg.BatchSize,
	}, nil
}

// upsertVector is the Pinecone wire format for one vector.
type upsertVector struct {
	ID       string               `json:"id"`
	Values   []float32            `json:"values"`
	Metadata domain.ChunkMetadata `json:"metadata"`
}

// Upsert writes records in batches. The underlying store gives no
// atomicity across batches: on failure the error reports which ids did
// not apply so the caller knows the index state.
func (x *Index) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	for start := 0; start < len(records); start += x.batchSize {
		end := start + x.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		vectors := make([]upsertVector, len(batch))
		for i, r := range batch {
			vectors[i] = upsertVector{ID: r.ID, Values: r.Embedding, Metadata: r.Metadata}
		}

		body := map[string]any{"vectors": vectors}
		if x.namespace != "" {
			body["namespace"] = x.namespace
		}

		if err := x.post(ctx, "/vectors/upsert", body, nil); err != nil {
			return fmt.Errorf("upsert %s..%s (and %d later records) not applied: %w",
				batch[0].ID, batch[len(batch)-1].ID, len(records)-end, err)
		}
		logger.Debug("upserted %d vectors (%d/%d)", len(batch), end, len(records))
	}
	return nil
}

// queryResponse is the Pinecone /query response format.
type queryResponse struct {
	Matches []struct {
		ID       string               `json:"id"`
		Score    float64              `json:"score"`
		Metadata domain.ChunkMetadata `json:"metadata"`
	} `json:"matches"`
}

// Query performs a metadata-filtered similarity search. Equal scores
// are re-ordered by ascending id for reproducibility.
func (x *Index) Query(ctx context.Context, vector []float32, documentID string, topK int) ([]domain.VectorHit, error) {
	if topK <= 0 {
		topK = 3
	}

	body := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
		"filter": map[string]any{
			"document_id": map[string]any{"$eq": documentID},
		},
	}
	if x.namespace != "" {
		body["namespace"] = x.namespace
	}

	var resp queryResponse
	if err := x.post(ctx, "/query", body, &resp); err != nil {
		return nil, err
	}

	hits := make([]domain.VectorHit, len(resp.Matches))
	for i, m := range resp.Matches {
		hits[i] = domain.VectorHit{ID: m.ID, Score: m.Score, Metadata: m.Metadata}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})

	return hits, nil
}

// listResponse is the Pinecone /vectors/list response format.
type listResponse struct {
	Vectors []struct {
		ID string `json:"id"`
	} `json:"vectors"`
	Pagination struct {
		Next string `json:"next"`
	} `json:"pagination"`
}

// ListDocumentIDs pages through the id listing endpoint and derives the
// distinct document ids. Ids follow the {document_id}_{chunk_index}
// scheme, so the document id is everything before the final underscore.
// The id space is treated as opaque strings throughout; nothing here
// assumes a dense numeric range.
func (x *Index) ListDocumentIDs(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})

	token := ""
	for {
		path := "/vectors/list?limit=100"
		if x.namespace != "" {
			path += "&namespace=" + url.QueryEscape(x.namespace)
		}
		if token != "" {
			path += "&paginationToken=" + url.QueryEscape(token)
		}

		var resp listResponse
		if err := x.get(ctx, path, &resp); err != nil {
			return nil, err
		}

		for _, v := range resp.Vectors {
			seen[documentIDOf(v.ID)] = struct{}{}
		}

		token = resp.Pagination.Next
		if token == "" {
			break
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// statsResponse is the Pinecone /describe_index_stats response format.
type statsResponse struct {
	TotalVectorCount int `json:"totalVectorCount"`
}

// Count returns the total number of stored vectors.
func (x *Index) Count(ctx context.Context) (int, error) {
	var resp statsResponse
	if err := x.post(ctx, "/describe_index_stats", map[string]any{}, &resp); err != nil {
		return 0, err
	}
	return resp.TotalVectorCount, nil
}

// Ping validates the index is reachable and the key accepted.
func (x *Index) Ping(ctx context.Context) error {
	_, err := x.Count(ctx)
	return err
}

// Close releases resources.
func (x *Index) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// documentIDOf strips the trailing _<chunk index> from a vector id.
func documentIDOf(vectorID string) string {
	if i := strings.LastIndex(vectorID, "_"); i > 0 {
		return vectorID[:i]
	}
	return vectorID
}

func (x *Index) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return x.do(ctx, http.MethodPost, path, data, out)
}

func (x *Index) get(ctx context.Context, path string, out any) error {
	return x.do(ctx, http.MethodGet, path, nil, out)
}

// do performs one request with retries on transient failures.
// Transport errors, 429 and 5xx back off exponentially; anything else
// fails immediately.
func (x *Index) do(ctx context.Context, method, path string, body []byte, out any) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay(attempt)):
			}
			logger.Debug("pinecone %s %s retry %d/%d", method, path, attempt, maxRetries)
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, x.host+path, reader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Api-Key", x.apiKey)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := x.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if out != nil {
				if err := json.Unmarshal(respBody, out); err != nil {
					return fmt.Errorf("decode response: %w", err)
				}
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("pinecone %s: status %d: %s", path, resp.StatusCode, string(respBody))
			continue
		default:
			return fmt.Errorf("pinecone %s: status %d: %s: %w",
				path, resp.StatusCode, string(respBody), domain.ErrVectorIndexUnavailable)
		}
	}

	return fmt.Errorf("pinecone %s: %w: %v", path, domain.ErrVectorIndexUnavailable, lastErr)
}

func retryDelay(attempt int) time.Duration {
	d := baseRetryDelay << attempt
	if d > maxRetryDelay {
		d = maxRetryDelay
	}
	return d
}
