package driven

import "context"

// LLMService provides language model completions for the analysis
// workflows.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini and friends)
//   - Any OpenAI-compatible inference server
type LLMService interface {
	// Complete sends a system prompt and a user prompt and returns the
	// model's answer text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to fail fast on bad credentials.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
