package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/messages"
	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/styles"
	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/views/analysis"
	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/views/documents"
	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/views/history"
	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/views/menu"
	"github.com/claridad-labs/claridad/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// documentsView lists the registered documents.
	documentsView *documents.View

	// analysisView runs both comparison flows.
	analysisView *analysis.View

	// historyView lists past analyses.
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		documentsView: documents.NewView(s, ports.Indexer),
		analysisView:  analysis.NewView(s, ports.Analysis),
		historyView:   history.NewView(s, ports.Analysis),
		currentView:   messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app and the views that talk to
// the services, so cancelling it aborts in-flight calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.documentsView.SetContext(ctx)
	a.analysisView.SetContext(ctx)
	a.historyView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("claridad - Análisis de reglamentos"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.analysisView.SetDimensions(msg.Width, msg.Height)
		a.historyView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}

		return a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewDocuments:
			return a, a.documentsView.Init()
		case messages.ViewCompliance:
			a.analysisView.SetKind(domain.AnalysisCompliance)
			a.analysisView.Reset()
			return a, a.analysisView.Init()
		case messages.ViewTerms:
			a.analysisView.SetKind(domain.AnalysisTerms)
			a.analysisView.Reset()
			return a, a.analysisView.Init()
		case messages.ViewHistory:
			return a, a.historyView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.DocumentsLoaded:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.AnalysisCompleted:
		a.analysisView, cmd = a.analysisView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a.forward(msg)
}

// forward routes a message to the active view.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewCompliance, messages.ViewTerms:
		a.analysisView, cmd = a.analysisView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Inicializando..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewCompliance, messages.ViewTerms:
		return a.analysisView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Ayuda

Navegación:
  esc         Volver al menú
  ctrl+c      Salir

Menú:
  j/k, ↑/↓    Navegar opciones
  enter       Seleccionar

Análisis:
  (escribir)  ID del documento indexado
  enter       Continuar / ejecutar
  esc         Volver al menú

Historial:
  j/k, ↑/↓    Navegar análisis
  enter       Mostrar u ocultar la respuesta

[esc] volver al menú`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.analysisView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
