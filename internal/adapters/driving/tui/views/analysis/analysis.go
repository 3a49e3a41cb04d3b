// Package analysis provides the interactive analysis view for the TUI.
// It collects the document IDs, runs the selected comparison and renders
// the model's answer.
package analysis

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/messages"
	"github.com/claridad-labs/claridad/internal/adapters/driving/tui/styles"
	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
)

// step tracks the progression through the analysis flow.
type step int

const (
	stepFund step = iota
	stepNorm
	stepRunning
	stepDone
)

// View represents the analysis view.
type View struct {
	styles   *styles.Styles
	analysis driving.AnalysisService
	ctx      context.Context

	kind      domain.AnalysisKind
	fundInput textinput.Model
	normInput textinput.Model
	spin      spinner.Model

	step   step
	result *domain.Analysis
	err    error

	width  int
	height int
}

// NewView creates a new analysis view.
func NewView(s *styles.Styles, analysis driving.AnalysisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	fund := textinput.New()
	fund.Placeholder = "reglamento_interno_2021"
	fund.CharLimit = 128

	norm := textinput.New()
	norm.Placeholder = "norma_corfo_2019"
	norm.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &View{
		styles:    s,
		analysis:  analysis,
		ctx:       context.Background(),
		kind:      domain.AnalysisCompliance,
		fundInput: fund,
		normInput: norm,
		spin:      sp,
		width:     80,
		height:    24,
	}
}

// SetKind selects which comparison the view runs.
func (v *View) SetKind(kind domain.AnalysisKind) {
	v.kind = kind
}

// SetContext sets the context used for analysis calls so that
// cancelling the application aborts in-flight LLM requests.
func (v *View) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	v.ctx = ctx
}

// Reset clears inputs and results so the view can be reused.
func (v *View) Reset() {
	v.fundInput.SetValue("")
	v.normInput.SetValue("")
	v.fundInput.Blur()
	v.normInput.Blur()
	v.step = stepFund
	v.result = nil
	v.err = nil
}

// Init focuses the fund input.
func (v *View) Init() tea.Cmd {
	return v.fundInput.Focus()
}

// Update handles messages for the analysis view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case spinner.TickMsg:
		if v.step != stepRunning {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case messages.AnalysisCompleted:
		v.step = stepDone
		v.result = msg.Analysis
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.updateKey(msg)
	}

	return v, nil
}

func (v *View) updateKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch v.step {
	case stepFund:
		if msg.Type == tea.KeyEnter {
			if strings.TrimSpace(v.fundInput.Value()) == "" {
				return v, nil
			}
			if v.kind == domain.AnalysisCompliance {
				v.step = stepNorm
				v.fundInput.Blur()
				return v, v.normInput.Focus()
			}
			return v.startAnalysis()
		}
		var cmd tea.Cmd
		v.fundInput, cmd = v.fundInput.Update(msg)
		return v, cmd

	case stepNorm:
		if msg.Type == tea.KeyEnter {
			if strings.TrimSpace(v.normInput.Value()) == "" {
				return v, nil
			}
			return v.startAnalysis()
		}
		var cmd tea.Cmd
		v.normInput, cmd = v.normInput.Update(msg)
		return v, cmd

	case stepDone:
		if msg.Type == tea.KeyEnter {
			v.Reset()
			return v, v.Init()
		}
	case stepRunning:
		// Ignore keys while the analysis is in flight.
	}

	return v, nil
}

func (v *View) startAnalysis() (*View, tea.Cmd) {
	v.step = stepRunning
	v.normInput.Blur()

	fundID := strings.TrimSpace(v.fundInput.Value())
	normID := strings.TrimSpace(v.normInput.Value())
	kind := v.kind

	run := func() tea.Msg {
		var (
			result *domain.Analysis
			err    error
		)
		if kind == domain.AnalysisCompliance {
			result, err = v.analysis.AnalyzeCompliance(v.ctx, fundID, normID)
		} else {
			result, err = v.analysis.AnalyzeTerms(v.ctx, fundID)
		}
		return messages.AnalysisCompleted{Analysis: result, Err: err}
	}

	return v, tea.Batch(v.spin.Tick, run)
}

// View renders the analysis flow.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title()))
	b.WriteString("\n\n")

	switch v.step {
	case stepFund, stepNorm:
		b.WriteString(v.styles.Normal.Render("ID del reglamento interno del fondo:"))
		b.WriteString("\n")
		b.WriteString(v.fundInput.View())
		b.WriteString("\n")
		if v.kind == domain.AnalysisCompliance {
			b.WriteString("\n")
			b.WriteString(v.styles.Normal.Render("ID de la norma CORFO:"))
			b.WriteString("\n")
			b.WriteString(v.normInput.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[Enter] Continuar  [esc] Menú"))

	case stepRunning:
		b.WriteString(v.spin.View())
		b.WriteString(v.styles.Muted.Render(" Analizando documentos..."))

	case stepDone:
		b.WriteString(v.renderResult())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Enter] Nuevo análisis  [esc] Menú"))
	}

	return b.String()
}

func (v *View) renderResult() string {
	if v.err != nil {
		if errors.Is(v.err, domain.ErrNoContext) {
			return v.styles.Warning.Render(
				"No se encontró contexto relevante en el índice para los documentos indicados.")
		}
		return v.styles.Error.Render("Error: " + v.err.Error())
	}

	if v.result == nil || strings.TrimSpace(v.result.Answer) == "" {
		return v.styles.Warning.Render("El modelo no entregó una respuesta.")
	}

	width := v.width - 4
	if width > 100 {
		width = 100
	}
	if width < 20 {
		width = 20
	}

	return v.styles.Answer.Width(width).Render(v.result.Answer)
}

func (v *View) title() string {
	if v.kind == domain.AnalysisTerms {
		return "Análisis de plazos del fondo"
	}
	return "Análisis de reparto de dividendos"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Result returns the last analysis result.
func (v *View) Result() *domain.Analysis {
	return v.result
}

// Err returns the last analysis error.
func (v *View) Err() error {
	return v.err
}
