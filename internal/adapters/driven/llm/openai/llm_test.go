package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claridad-labs/claridad/internal/core/domain"
)

func newTestLLM(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestComplete_SendsSystemAndUserMessages(t *testing.T) {
	svc := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "Actúa como un experto.", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "gpt-4o-mini", req.Model)

		w.Write([]byte(`{"choices":[{"message":{"content":"  La respuesta.  "},"finish_reason":"stop"}]}`))
	})

	got, err := svc.Complete(context.Background(), "Actúa como un experto.", "¿Cumple la norma?")
	require.NoError(t, err)
	assert.Equal(t, "La respuesta.", got)
}

func TestComplete_RetriesServerErrors(t *testing.T) {
	calls := 0
	svc := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	got, err := svc.Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestComplete_APIErrorNotRetried(t *testing.T) {
	calls := 0
	svc := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`))
	})

	_, err := svc.Complete(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Equal(t, 1, calls)
}

func TestComplete_NoChoices(t *testing.T) {
	svc := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := svc.Complete(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestModelName_Default(t *testing.T) {
	svc, err := NewLLMService(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
}
