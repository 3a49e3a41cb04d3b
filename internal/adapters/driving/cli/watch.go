package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/claridad-labs/claridad/internal/core/ports/driving"
	"github.com/claridad-labs/claridad/internal/core/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and index dropped PDFs",
	Long: `Watches a directory and automatically indexes every PDF that is
created or modified in it. Writes are debounced so a file is only
indexed once it has settled. Press ctrl+c to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	watcher := services.NewInboxWatcher(indexerService, args[0])
	watcher.OnIndexed = func(report *driving.IndexReport) {
		cmd.Printf("%s indexed %q (%d chunks, %s)\n",
			green("✓"), report.Document.ID, report.ChunkCount, report.Strategy)
	}
	watcher.OnError = func(path string, err error) {
		cmd.Printf("%s %s: %v\n", red("✗"), path, err)
	}

	cmd.Printf("Watching %s for PDFs...\n", args[0])
	if err := watcher.Watch(cmd.Context()); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
