package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var indexDocumentID string

var indexCmd = &cobra.Command{
	Use:   "index [file.pdf]",
	Short: "Index a PDF into the vector index",
	Long: `Extracts text from a PDF (falling back to OCR for scanned documents),
splits it into overlapping chunks, embeds each chunk and stores the
vectors in the Pinecone index tagged with the document ID.

By default the document ID is derived from the file name; use --id to
override it.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexDocumentID, "id", "", "document ID (default: derived from file name)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	path := args[0]
	cmd.Printf("Indexing %s...\n", path)

	report, err := indexerService.IndexFile(cmd.Context(), path, indexDocumentID)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	green := color.New(color.FgGreen).SprintFunc()
	cmd.Printf("%s indexed %q\n", green("✓"), report.Document.ID)
	cmd.Printf("  strategy: %s\n", report.Strategy)
	cmd.Printf("  chunks:   %d\n", report.ChunkCount)
	return nil
}
