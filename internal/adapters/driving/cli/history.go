package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses",
	Long:  `Lists previously executed analyses, newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of analyses")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	analyses, err := analysisService.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing analyses: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(analyses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analyses: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(analyses) == 0 {
		cmd.Println("No analyses recorded yet.")
		return nil
	}

	for _, a := range analyses {
		label := a.FundID
		if a.NormID != "" {
			label = fmt.Sprintf("%s vs %s", a.FundID, a.NormID)
		}
		cmd.Printf("[%s] %-12s %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.Kind, label)
		cmd.Printf("    %s\n\n", a.Answer)
	}
	return nil
}
