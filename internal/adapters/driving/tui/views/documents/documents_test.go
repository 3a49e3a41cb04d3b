package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/messages"
	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
)

type mockIndexerService struct {
	documents []domain.Document
	err       error
}

func (m *mockIndexerService) IndexFile(_ context.Context, _, _ string) (*driving.IndexReport, error) {
	return nil, m.err
}

func (m *mockIndexerService) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockIndexerService) ListIndexedIDs(_ context.Context) ([]string, error) {
	return nil, m.err
}

func TestView_LoadsDocuments(t *testing.T) {
	indexer := &mockIndexerService{
		documents: []domain.Document{
			{
				ID:         "fondo_a",
				Strategy:   "selectable",
				ChunkCount: 8,
				IndexedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	v := NewView(nil, indexer)
	cmd := v.Init()
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.DocumentsLoaded)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	v, _ = v.Update(msg)
	require.Len(t, v.Documents(), 1)

	out := v.View()
	assert.Contains(t, out, "fondo_a")
	assert.Contains(t, out, "selectable")
	assert.Contains(t, out, "8 chunks")
}

func TestView_EmptyRegistry(t *testing.T) {
	v := NewView(nil, &mockIndexerService{})
	v, _ = v.Update(messages.DocumentsLoaded{})

	out := v.View()
	assert.Contains(t, out, "No hay documentos indexados")
}

func TestView_LoadError(t *testing.T) {
	v := NewView(nil, &mockIndexerService{err: errors.New("index unreachable")})

	cmd := v.Init()
	msg := cmd().(messages.DocumentsLoaded)
	v, _ = v.Update(msg)

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "index unreachable")
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil, &mockIndexerService{})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}
