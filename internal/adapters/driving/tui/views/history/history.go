// Package history provides the past-analyses listing view for the TUI.
package history

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

// loadLimit caps how many analyses the view fetches.
const loadLimit = 50

// View represents the analysis history view.
type View struct {
	styles   *styles.Styles
	analysis driving.AnalysisService
	ctx      context.Context

	analyses []domain.Analysis
	selected int
	expanded bool
	loading  bool
	err      error

	width  int
	height int
}

// NewView creates a new history view.
func NewView(s *styles.Styles, analysis driving.AnalysisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		analysis: analysis,
		ctx:      context.Background(),
		width:    80,
		height:   24,
	}
}

// SetContext sets the context used for history loads.
func (v *View) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	v.ctx = ctx
}

// Init starts loading the history.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	v.expanded = false
	return v.loadHistory()
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		v.analyses = msg.Analyses
		v.err = msg.Err
		v.selected = 0
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			v.expanded = false
			return v, nil

		case "down", "j":
			if v.selected < len(v.analyses)-1 {
				v.selected++
			}
			v.expanded = false
			return v, nil

		case "enter":
			if len(v.analyses) > 0 {
				v.expanded = !v.expanded
			}
			return v, nil

		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}

	return v, nil
}

// View renders the history list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Historial de análisis"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Cargando historial..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))

	case len(v.analyses) == 0:
		b.WriteString(v.styles.Muted.Render("Todavía no se ha ejecutado ningún análisis."))

	default:
		for i, a := range v.analyses {
			cursor := "  "
			style := v.styles.Normal
			if i == v.selected {
				cursor = "> "
				style = v.styles.Subtitle
			}

			label := a.FundID
			if a.NormID != "" {
				label = fmt.Sprintf("%s vs %s", a.FundID, a.NormID)
			}
			line := fmt.Sprintf("%-12s %-40s %s",
				a.Kind, label, a.CreatedAt.Format("2006-01-02 15:04"))
			b.WriteString(cursor + style.Render(line))
			b.WriteString("\n")

			if i == v.selected && v.expanded {
				width := v.width - 6
				if width > 100 {
					width = 100
				}
				if width < 20 {
					width = 20
				}
				b.WriteString(v.styles.Answer.Width(width).Render(a.Answer))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navegar  [Enter] Ver respuesta  [esc] Menú"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Analyses returns the loaded analyses.
func (v *View) Analyses() []domain.Analysis {
	return v.analyses
}

func (v *View) loadHistory() tea.Cmd {
	return func() tea.Msg {
		analyses, err := v.analysis.History(v.ctx, loadLimit)
		return messages.HistoryLoaded{Analyses: analyses, Err: err}
	}
}
