package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/claridad-labs/claridad/internal/core/domain"
)

var (
	analyzeFundID string
	analyzeNormID string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a regulatory analysis",
	Long:  `Runs one of the fixed comparisons between indexed documents.`,
}

var analyzeComplianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Check dividend distribution rules against a CORFO norm",
	Long: `Retrieves the dividend distribution clauses from the fund's internal
regulation and the corresponding requirements from the CORFO norm, then
asks the model whether the fund complies.`,
	RunE: runAnalyzeCompliance,
}

var analyzeTermsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Check the fund's duration against its CORFO debt maturity",
	Long: `Retrieves the fund duration clause and the CORFO debt maturity clause
from the fund's internal regulation, then asks the model whether the
duration covers the debt.`,
	RunE: runAnalyzeTerms,
}

func init() {
	analyzeComplianceCmd.Flags().StringVar(&analyzeFundID, "fund", "", "document ID of the fund regulation (required)")
	analyzeComplianceCmd.Flags().StringVar(&analyzeNormID, "norm", "", "document ID of the CORFO norm (required)")
	analyzeComplianceCmd.MarkFlagRequired("fund") //nolint:errcheck
	analyzeComplianceCmd.MarkFlagRequired("norm") //nolint:errcheck

	analyzeTermsCmd.Flags().StringVar(&analyzeFundID, "fund", "", "document ID of the fund regulation (required)")
	analyzeTermsCmd.MarkFlagRequired("fund") //nolint:errcheck

	analyzeCmd.AddCommand(analyzeComplianceCmd)
	analyzeCmd.AddCommand(analyzeTermsCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyzeCompliance(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	analysis, err := analysisService.AnalyzeCompliance(cmd.Context(), analyzeFundID, analyzeNormID)
	if err != nil {
		return analyzeError(err)
	}

	printAnalysis(cmd, "Análisis de reparto de dividendos", analysis.Answer)
	return nil
}

func runAnalyzeTerms(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	analysis, err := analysisService.AnalyzeTerms(cmd.Context(), analyzeFundID)
	if err != nil {
		return analyzeError(err)
	}

	printAnalysis(cmd, "Análisis de plazos del fondo", analysis.Answer)
	return nil
}

func analyzeError(err error) error {
	if errors.Is(err, domain.ErrNoContext) {
		return fmt.Errorf("no relevant context found in the index; check the document IDs with 'claridad documents'")
	}
	return fmt.Errorf("analysis failed: %w", err)
}

func printAnalysis(cmd *cobra.Command, title, answer string) {
	bold := color.New(color.Bold).SprintFunc()
	cmd.Println(bold(title))
	cmd.Println()
	cmd.Println(answer)
}
