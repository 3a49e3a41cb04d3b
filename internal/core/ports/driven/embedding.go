package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from VectorIndex which stores and searches
// vectors. EmbeddingService generates vectors; VectorIndex stores them.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Local models behind an OpenAI-compatible inference server
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Functionally stable for identical input, though the external
	// model does not guarantee bit-exact repeats.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1536, 3072).
	// This is determined by the model and must match the vector index.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to fail fast on bad credentials.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
