package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates missing or malformed configuration.
	// Raised at startup, never deep inside a workflow.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidChunking indicates chunking parameters that can never
	// terminate (overlap >= chunk size).
	ErrInvalidChunking = errors.New("invalid chunking parameters")

	// ErrExtractionFailed indicates a PDF could not be read or a page
	// could not be recognised by the OCR engine.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmbeddingUnavailable indicates the embedding service failed.
	// Callers decide the retry policy; the adapter already retries
	// transient transport and quota failures.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index cannot be
	// reached. Any index operation may fail with this error.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrLLMUnavailable indicates the language model call failed.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrNoContext indicates retrieval produced empty context for every
	// side of an analysis. Surfaced instead of prompting the model with
	// nothing and fabricating an answer.
	ErrNoContext = errors.New("no relevant context found")
)
