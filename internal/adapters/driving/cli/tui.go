package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/claridad-labs/claridad/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Claridad.

The TUI lets you browse indexed documents, run both analyses and review
past results with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Run
  Esc      - Back
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery so a rendering bug leaves a usable stack trace
	// instead of a corrupted terminal.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureServices(); err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(analysisService, indexerService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
