// Package cli implements the command-line driving adapter for claridad.
// It wires the configuration, driven adapters and core services together
// and exposes them as cobra commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claridad-labs/claridad/internal/adapters/driven/config/file"
	openaiembed "github.com/claridad-labs/claridad/internal/adapters/driven/embedding/openai"
	openaillm "github.com/claridad-labs/claridad/internal/adapters/driven/llm/openai"
	"github.com/claridad-labs/claridad/internal/adapters/driven/storage/sqlite"
	"github.com/claridad-labs/claridad/internal/adapters/driven/vector/pinecone"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
	"github.com/claridad-labs/claridad/internal/core/ports/driving"
	"github.com/claridad-labs/claridad/internal/core/services"
	"github.com/claridad-labs/claridad/internal/extractors/fitz"
	"github.com/claridad-labs/claridad/internal/extractors/scanned"
	"github.com/claridad-labs/claridad/internal/extractors/selectable"
	"github.com/claridad-labs/claridad/internal/extractors/tesseract"
	"github.com/claridad-labs/claridad/internal/logger"
	"github.com/claridad-labs/claridad/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services used by the commands. Populated by ensureServices, or
// injected directly in tests.
var (
	indexerService  driving.IndexerService
	analysisService driving.AnalysisService

	cleanups []func() error
)

var rootCmd = &cobra.Command{
	Use:   "claridad",
	Short: "Regulatory analysis for investment fund documents",
	Long: `Claridad indexes Chilean investment fund regulations and CORFO norms
into a vector index and runs LLM-backed comparisons between them.

Typical workflow:
  claridad config init          configure API keys
  claridad index fondo_a.pdf    index a fund regulation
  claridad index norma_b.pdf    index a CORFO norm
  claridad analyze compliance --fund fondo_a --norm norma_b`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// ensureServices builds the full service graph on first use. Commands
// that only touch configuration never pay the wiring cost.
func ensureServices() error {
	if indexerService != nil && analysisService != nil {
		return nil
	}

	cfg, err := file.Load("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w (run 'claridad config init')", err)
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	cleanups = append(cleanups, store.Close)

	embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.EmbeddingModel,
	})
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}
	cleanups = append(cleanups, embedder.Close)

	index, err := pinecone.NewIndex(pinecone.Config{
		APIKey:    cfg.Pinecone.APIKey,
		Host:      cfg.Pinecone.IndexHost,
		Namespace: cfg.Pinecone.Namespace,
	})
	if err != nil {
		return fmt.Errorf("creating vector index client: %w", err)
	}
	cleanups = append(cleanups, index.Close)

	llm, err := openaillm.NewLLMService(openaillm.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.LLMModel,
	})
	if err != nil {
		return fmt.Errorf("creating llm service: %w", err)
	}
	cleanups = append(cleanups, llm.Close)

	splitter, err := chunker.New(
		chunker.WithChunkSize(cfg.Indexing.ChunkSize),
		chunker.WithOverlap(cfg.Indexing.ChunkOverlap),
	)
	if err != nil {
		return fmt.Errorf("creating chunker: %w", err)
	}

	reader := fitz.NewReader()
	engine := tesseract.NewEngine(tesseract.WithLanguage(cfg.Indexing.OCRLanguage))
	extractors := []driven.TextExtractor{
		selectable.New(reader),
		scanned.New(reader, engine, scanned.WithDPI(cfg.Indexing.OCRDPI)),
	}

	indexerService = services.NewIndexerService(
		extractors,
		splitter,
		embedder,
		index,
		store.DocumentStore(),
		services.WithWorkers(cfg.Indexing.Workers),
	)

	retriever := services.NewRetriever(embedder, index, cfg.Retrieval.TopK)
	analysisService = services.NewAnalysisService(retriever, llm, store.AnalysisStore())

	return nil
}

func closeServices() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		if err := cleanups[i](); err != nil {
			logger.Warn("cleanup failed: %v", err)
		}
	}
	cleanups = nil
}
