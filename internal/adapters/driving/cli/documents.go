package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	documentsRemote bool
	documentsJSON   bool
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List indexed documents",
	Long: `Lists the documents registered locally, with their extraction strategy
and chunk count. Use --remote to list the document IDs present in the
vector index instead; the two can drift if indexing was run from
another machine.`,
	RunE: runDocuments,
}

func init() {
	documentsCmd.Flags().BoolVar(&documentsRemote, "remote", false, "list document IDs from the vector index")
	documentsCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(documentsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	if documentsRemote {
		return outputRemoteDocuments(cmd)
	}
	return outputLocalDocuments(cmd)
}

func outputLocalDocuments(cmd *cobra.Command) error {
	docs, err := indexerService.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if documentsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents indexed yet.")
		return nil
	}

	cmd.Printf("%-30s %-12s %8s  %s\n", "ID", "STRATEGY", "CHUNKS", "INDEXED AT")
	for _, doc := range docs {
		cmd.Printf("%-30s %-12s %8d  %s\n",
			doc.ID, doc.Strategy, doc.ChunkCount,
			doc.IndexedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func outputRemoteDocuments(cmd *cobra.Command) error {
	ids, err := indexerService.ListIndexedIDs(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing indexed ids: %w", err)
	}

	if documentsJSON {
		data, err := json.MarshalIndent(ids, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal ids: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(ids) == 0 {
		cmd.Println("The vector index is empty.")
		return nil
	}

	for _, id := range ids {
		cmd.Println(id)
	}
	return nil
}
