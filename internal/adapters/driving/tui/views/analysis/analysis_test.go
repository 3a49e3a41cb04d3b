package analysis

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/messages"
	"github.com/claridad-labs/claridad/internal/core/domain"
)

type mockAnalysisService struct {
	analysis *domain.Analysis
	err      error

	lastCtx    context.Context
	lastFundID string
	lastNormID string
}

func (m *mockAnalysisService) AnalyzeCompliance(ctx context.Context, fundID, normID string) (*domain.Analysis, error) {
	m.lastCtx = ctx
	m.lastFundID = fundID
	m.lastNormID = normID
	return m.analysis, m.err
}

func (m *mockAnalysisService) AnalyzeTerms(ctx context.Context, fundID string) (*domain.Analysis, error) {
	m.lastCtx = ctx
	m.lastFundID = fundID
	return m.analysis, m.err
}

func (m *mockAnalysisService) History(_ context.Context, _ int) ([]domain.Analysis, error) {
	return nil, m.err
}

func typeText(v *View, text string) *View {
	for _, r := range text {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return v
}

func enter(v *View) (*View, tea.Cmd) {
	return v.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

// runBatch executes a tea.Batch command and returns the analysis message.
func runBatch(t *testing.T, cmd tea.Cmd) messages.AnalysisCompleted {
	t.Helper()
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	for _, c := range batch {
		if msg, ok := c().(messages.AnalysisCompleted); ok {
			return msg
		}
	}
	t.Fatal("batch did not contain an analysis result")
	return messages.AnalysisCompleted{}
}

func TestView_ComplianceFlow(t *testing.T) {
	svc := &mockAnalysisService{
		analysis: &domain.Analysis{
			ID:     "a-1",
			Kind:   domain.AnalysisCompliance,
			FundID: "fondo_a",
			NormID: "norma_b",
			Answer: "El reglamento cumple con la norma.",
		},
	}

	v := NewView(nil, svc)
	v.SetKind(domain.AnalysisCompliance)
	v.Reset()
	_ = v.Init()

	v = typeText(v, "fondo_a")
	v, _ = enter(v)
	v = typeText(v, "norma_b")
	v, cmd := enter(v)

	msg := runBatch(t, cmd)
	require.NoError(t, msg.Err)
	assert.Equal(t, "fondo_a", svc.lastFundID)
	assert.Equal(t, "norma_b", svc.lastNormID)

	v, _ = v.Update(msg)
	require.NotNil(t, v.Result())
	assert.Contains(t, v.View(), "El reglamento cumple con la norma.")
}

func TestView_TermsFlowSkipsNormInput(t *testing.T) {
	svc := &mockAnalysisService{
		analysis: &domain.Analysis{
			ID:     "a-2",
			Kind:   domain.AnalysisTerms,
			FundID: "fondo_a",
			Answer: "El plazo cubre el vencimiento.",
		},
	}

	v := NewView(nil, svc)
	v.SetKind(domain.AnalysisTerms)
	v.Reset()
	_ = v.Init()

	v = typeText(v, "fondo_a")
	v, cmd := enter(v)

	msg := runBatch(t, cmd)
	require.NoError(t, msg.Err)
	assert.Equal(t, "fondo_a", svc.lastFundID)
	assert.Empty(t, svc.lastNormID)

	v, _ = v.Update(msg)
	assert.Contains(t, v.View(), "El plazo cubre el vencimiento.")
}

func TestView_UsesConfiguredContext(t *testing.T) {
	svc := &mockAnalysisService{
		analysis: &domain.Analysis{ID: "a-3", Kind: domain.AnalysisTerms, FundID: "fondo_a"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := NewView(nil, svc)
	v.SetContext(ctx)
	v.SetKind(domain.AnalysisTerms)
	v.Reset()
	_ = v.Init()

	v = typeText(v, "fondo_a")
	_, cmd := enter(v)
	runBatch(t, cmd)

	require.NotNil(t, svc.lastCtx)
	assert.ErrorIs(t, svc.lastCtx.Err(), context.Canceled)
}

func TestView_EmptyFundIDIsIgnored(t *testing.T) {
	v := NewView(nil, &mockAnalysisService{})
	v.Reset()
	_ = v.Init()

	_, cmd := enter(v)
	assert.Nil(t, cmd)
}

func TestView_NoContextRendersWarning(t *testing.T) {
	v := NewView(nil, &mockAnalysisService{})
	v.SetKind(domain.AnalysisTerms)
	v.Reset()

	v, _ = v.Update(messages.AnalysisCompleted{Err: domain.ErrNoContext})
	assert.Contains(t, v.View(), "No se encontró contexto relevante")
}

func TestView_ErrorRendered(t *testing.T) {
	v := NewView(nil, &mockAnalysisService{})
	v.Reset()

	v, _ = v.Update(messages.AnalysisCompleted{Err: domain.ErrLLMUnavailable})
	assert.Contains(t, v.View(), "Error:")
}

func TestView_ResetClearsState(t *testing.T) {
	v := NewView(nil, &mockAnalysisService{})
	v.Reset()
	_ = v.Init()

	v = typeText(v, "fondo_a")
	v, _ = v.Update(messages.AnalysisCompleted{Analysis: &domain.Analysis{Answer: "ok"}})
	require.NotNil(t, v.Result())

	v.Reset()
	assert.Nil(t, v.Result())
	assert.NoError(t, v.Err())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil, &mockAnalysisService{})
	v.Reset()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}
