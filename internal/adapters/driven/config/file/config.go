package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/claridad-labs/claridad/internal/core/domain"
)

// Default configuration values.
const (
	DefaultChunkSize    = 200
	DefaultChunkOverlap = 50
	DefaultOCRDPI       = 300
	DefaultOCRLanguage  = "spa"
	DefaultWorkers      = 4
	DefaultTopK         = 4
)

// Config is the resolved Claridad configuration.
type Config struct {
	OpenAI    OpenAIConfig    `toml:"openai"`
	Pinecone  PineconeConfig  `toml:"pinecone"`
	Indexing  IndexingConfig  `toml:"indexing"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Storage   StorageConfig   `toml:"storage"`

	path string
}

// OpenAIConfig configures the embedding and LLM services.
type OpenAIConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	EmbeddingModel string `toml:"embedding_model"`
	LLMModel       string `toml:"llm_model"`
}

// PineconeConfig configures the vector index.
type PineconeConfig struct {
	APIKey    string `toml:"api_key"`
	IndexHost string `toml:"index_host"`
	IndexName string `toml:"index_name"`
	Namespace string `toml:"namespace"`
}

// IndexingConfig configures extraction and chunking.
type IndexingConfig struct {
	ChunkSize    int    `toml:"chunk_size"`
	ChunkOverlap int    `toml:"chunk_overlap"`
	OCRDPI       int    `toml:"ocr_dpi"`
	OCRLanguage  string `toml:"ocr_language"`
	Workers      int    `toml:"workers"`
}

// RetrievalConfig configures context retrieval.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// StorageConfig configures local persistence.
type StorageConfig struct {
	DataDir string `toml:"data_dir"`
}

// Load reads the configuration from configDir, applies defaults, and
// overlays environment variables. If configDir is empty, defaults to
// ~/.claridad. A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".claridad")
	}

	cfg := defaults()
	cfg.path = filepath.Join(configDir, "config.toml")

	data, err := os.ReadFile(cfg.path)
	switch {
	case os.IsNotExist(err):
		// No config file yet, defaults plus environment apply.
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidConfig, cfg.path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// defaults returns a Config populated with built-in defaults.
func defaults() *Config {
	return &Config{
		Indexing: IndexingConfig{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
			OCRDPI:       DefaultOCRDPI,
			OCRLanguage:  DefaultOCRLanguage,
			Workers:      DefaultWorkers,
		},
		Retrieval: RetrievalConfig{
			TopK: DefaultTopK,
		},
	}
}

// applyEnv overlays environment variables onto the loaded values.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("PINECONE_API_KEY"); v != "" {
		c.Pinecone.APIKey = v
	}
	if v := os.Getenv("PINECONE_INDEX_HOST"); v != "" {
		c.Pinecone.IndexHost = v
	}
	if v := os.Getenv("PINECONE_INDEX_NAME"); v != "" {
		c.Pinecone.IndexName = v
	}
	if v := os.Getenv("CLARIDAD_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
}

// Validate checks that every value required to run the pipeline is
// present and coherent. It reports all missing settings at once.
func (c *Config) Validate() error {
	var missing []string
	if c.OpenAI.APIKey == "" {
		missing = append(missing, "openai.api_key (or OPENAI_API_KEY)")
	}
	if c.Pinecone.APIKey == "" {
		missing = append(missing, "pinecone.api_key (or PINECONE_API_KEY)")
	}
	if c.Pinecone.IndexHost == "" {
		missing = append(missing, "pinecone.index_host (or PINECONE_INDEX_HOST)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidConfig, strings.Join(missing, ", "))
	}

	if c.Indexing.ChunkSize <= 0 {
		return fmt.Errorf("%w: indexing.chunk_size must be positive", domain.ErrInvalidConfig)
	}
	if c.Indexing.ChunkOverlap < 0 || c.Indexing.ChunkOverlap >= c.Indexing.ChunkSize {
		return fmt.Errorf("%w: indexing.chunk_overlap must be in [0, chunk_size)", domain.ErrInvalidConfig)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: retrieval.top_k must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// Save persists the configuration to its config file with restricted
// permissions, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(c.path, data, 0600)
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}
