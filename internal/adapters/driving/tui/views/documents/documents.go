// Package documents provides the indexed document listing view for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/messages"
	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/styles"
	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
)

// View represents the document listing view.
type View struct {
	styles  *styles.Styles
	indexer driving.IndexerService
	ctx     context.Context

	documents []domain.Document
	selected  int
	loading   bool
	err       error

	width  int
	height int
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, indexer driving.IndexerService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		indexer: indexer,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// SetContext sets the context used for document loads.
func (v *View) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	v.ctx = ctx
}

// Init starts loading the registered documents.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadDocuments()
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case messages.DocumentsLoaded:
		v.loading = false
		v.documents = msg.Documents
		v.err = msg.Err
		v.selected = 0
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.documents)-1 {
				v.selected++
			}
			return v, nil

		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadDocuments()

		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}

	return v, nil
}

// View renders the document list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Documentos indexados"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Cargando documentos..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))

	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No hay documentos indexados todavía."))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Use 'claridad index <archivo.pdf>' para indexar uno."))

	default:
		for i, doc := range v.documents {
			cursor := "  "
			style := v.styles.Normal
			if i == v.selected {
				cursor = "> "
				style = v.styles.Subtitle
			}

			line := fmt.Sprintf("%-30s %-12s %4d chunks  %s",
				doc.ID, doc.Strategy, doc.ChunkCount,
				doc.IndexedAt.Format("2006-01-02 15:04"))
			b.WriteString(cursor + style.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navegar  [r] Recargar  [esc] Menú"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Documents returns the loaded documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

func (v *View) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		docs, err := v.indexer.ListDocuments(v.ctx)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}
