package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/claridad-labs/claridad/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for inspecting and writing the claridad configuration file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively configure API keys",
	Long: `Prompts for the OpenAI and Pinecone credentials and writes them to
~/.claridad/config.toml. Values already set via environment variables
can be left blank.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long:  `Prints the resolved configuration with secrets masked.`,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Claridad configuration")
	cmd.Println()

	cmd.Print("OpenAI API key: ")
	if key := readPassword(); key != "" {
		cfg.OpenAI.APIKey = key
	}
	cmd.Println()

	cmd.Print("Pinecone API key: ")
	if key := readPassword(); key != "" {
		cfg.Pinecone.APIKey = key
	}
	cmd.Println()

	cmd.Printf("Pinecone index host [%s]: ", cfg.Pinecone.IndexHost)
	if host := readLine(reader); host != "" {
		cfg.Pinecone.IndexHost = host
	}

	cmd.Printf("Pinecone index name [%s]: ", cfg.Pinecone.IndexName)
	if name := readLine(reader); name != "" {
		cfg.Pinecone.IndexName = name
	}

	if cfg.OpenAI.APIKey == "" || cfg.Pinecone.APIKey == "" {
		return errors.New("both API keys are required")
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	cmd.Printf("Configuration written to %s\n", cfg.Path())
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	cmd.Printf("config file:          %s\n", cfg.Path())
	cmd.Printf("openai api key:       %s\n", maskAPIKey(cfg.OpenAI.APIKey))
	cmd.Printf("embedding model:      %s\n", cfg.OpenAI.EmbeddingModel)
	cmd.Printf("llm model:            %s\n", cfg.OpenAI.LLMModel)
	cmd.Printf("pinecone api key:     %s\n", maskAPIKey(cfg.Pinecone.APIKey))
	cmd.Printf("pinecone index host:  %s\n", cfg.Pinecone.IndexHost)
	cmd.Printf("pinecone index name:  %s\n", cfg.Pinecone.IndexName)
	cmd.Printf("chunk size:           %d\n", cfg.Indexing.ChunkSize)
	cmd.Printf("chunk overlap:        %d\n", cfg.Indexing.ChunkOverlap)
	cmd.Printf("retrieval top_k:      %d\n", cfg.Retrieval.TopK)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
