// Package services implements the core business logic of Claridad.
//
// Services implement the driving port interfaces and depend only on
// driven port interfaces, never on concrete adapters:
//
//   - IndexerService: PDF extraction, chunking, embedding, upserting
//   - AnalysisService: the two fixed regulatory analyses
//   - Retriever: tag-scoped context retrieval shared by the analyses
//   - InboxWatcher: indexes PDFs dropped into a watched directory
//
// # Import Rules
//
//   - Can Import: domain, ports/driven, ports/driving, logger
//   - Cannot Import: Any adapter package
package services
