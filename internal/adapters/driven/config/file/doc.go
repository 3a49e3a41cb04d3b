// Package file provides the TOML-backed configuration for Claridad.
//
// Configuration resolves in three layers, later layers winning:
//
//  1. built-in defaults
//  2. the config file (~/.claridad/config.toml by default)
//  3. environment variables (OPENAI_API_KEY, PINECONE_API_KEY,
//     PINECONE_INDEX_HOST, PINECONE_INDEX_NAME, CLARIDAD_DATA_DIR)
//
// Secrets are normally supplied through the environment or a .env file
// rather than the config file.
package file
