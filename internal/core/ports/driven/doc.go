// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PDFReader: Reads embedded text and rasterised pages from a PDF
//   - TextExtractor: Turns a PDF into a single plain-text string
//   - VectorIndex: Tagged vector storage and similarity search (Pinecone)
//   - EmbeddingService: Generates vector embeddings (OpenAI)
//   - LLMService: Language model completions (OpenAI)
//   - DocumentStore: Local registry of indexed documents
//   - AnalysisStore: Persistence for analysis results
//
// # Optional Interfaces
//
//   - OCREngine: Optical character recognition. Only needed for scanned
//     PDFs; without it, extraction falls back to embedded text only.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
