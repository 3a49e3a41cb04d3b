package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/messages"
	"github.com/claridad-labs/claridad/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	app, err := NewApp(&Ports{
		Analysis: &mockAnalysisService{},
		Indexer:  &mockIndexerService{},
	})
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

func TestNewApp(t *testing.T) {
	t.Run("missing analysis service returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{Indexer: &mockIndexerService{}})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingAnalysisService)
	})

	t.Run("missing indexer service returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{Analysis: &mockAnalysisService{}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingIndexerService)
		assert.Nil(t, app)
	})

	t.Run("valid ports starts on menu", func(t *testing.T) {
		app := newTestApp(t)
		assert.Equal(t, messages.ViewMenu, app.CurrentView())
		assert.True(t, app.Ready())
	})
}

func TestApp_Update(t *testing.T) {
	t.Run("window size marks app ready", func(t *testing.T) {
		app, err := NewApp(&Ports{
			Analysis: &mockAnalysisService{},
			Indexer:  &mockIndexerService{},
		})
		require.NoError(t, err)
		assert.False(t, app.Ready())

		model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
		updated := model.(*App)
		assert.True(t, updated.Ready())
	})

	t.Run("ctrl+c quits from any view", func(t *testing.T) {
		app := newTestApp(t)
		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("view changed switches the active view", func(t *testing.T) {
		app := newTestApp(t)

		model, cmd := app.Update(messages.ViewChanged{View: messages.ViewDocuments})
		updated := model.(*App)
		assert.Equal(t, messages.ViewDocuments, updated.CurrentView())
		// Switching to documents kicks off a load.
		assert.NotNil(t, cmd)
	})

	t.Run("compliance view configures the analysis flow", func(t *testing.T) {
		app := newTestApp(t)

		model, _ := app.Update(messages.ViewChanged{View: messages.ViewCompliance})
		updated := model.(*App)
		assert.Equal(t, messages.ViewCompliance, updated.CurrentView())
		assert.Contains(t, updated.View(), "reparto de dividendos")
	})

	t.Run("terms view configures the analysis flow", func(t *testing.T) {
		app := newTestApp(t)

		model, _ := app.Update(messages.ViewChanged{View: messages.ViewTerms})
		updated := model.(*App)
		assert.Equal(t, messages.ViewTerms, updated.CurrentView())
		assert.Contains(t, updated.View(), "plazos del fondo")
	})

	t.Run("esc from help returns to menu", func(t *testing.T) {
		app := newTestApp(t)

		model, _ := app.Update(messages.ViewChanged{View: messages.ViewHelp})
		updated := model.(*App)
		require.Equal(t, messages.ViewHelp, updated.CurrentView())

		model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
		updated = model.(*App)
		assert.Equal(t, messages.ViewMenu, updated.CurrentView())
	})

	t.Run("analysis completed records errors", func(t *testing.T) {
		app := newTestApp(t)

		model, _ := app.Update(messages.AnalysisCompleted{Err: domain.ErrNoContext})
		updated := model.(*App)
		assert.ErrorIs(t, updated.Err(), domain.ErrNoContext)
	})
}

func TestApp_View(t *testing.T) {
	t.Run("not ready shows placeholder", func(t *testing.T) {
		app, err := NewApp(&Ports{
			Analysis: &mockAnalysisService{},
			Indexer:  &mockIndexerService{},
		})
		require.NoError(t, err)
		assert.Contains(t, app.View(), "Inicializando")
	})

	t.Run("menu renders options", func(t *testing.T) {
		app := newTestApp(t)
		view := app.View()
		assert.Contains(t, view, "Claridad")
		assert.Contains(t, view, "Documentos indexados")
		assert.Contains(t, view, "Historial de análisis")
	})

	t.Run("help renders keybindings", func(t *testing.T) {
		app := newTestApp(t)
		model, _ := app.Update(messages.ViewChanged{View: messages.ViewHelp})
		view := model.(*App).View()
		assert.Contains(t, view, "Ayuda")
		assert.Contains(t, view, "ctrl+c")
	})
}
