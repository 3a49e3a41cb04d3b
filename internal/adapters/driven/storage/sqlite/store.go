package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/claridad-labs/claridad/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.claridad/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".claridad", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// AnalysisStore returns an AnalysisStore interface backed by this store.
func (s *Store) AnalysisStore() driven.AnalysisStore {
	return &analysisStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or updates an indexed document record.
func (s *documentStore) SaveDocument(ctx context.Context, doc domain.Document) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}

	if doc.IndexedAt.IsZero() {
		doc.IndexedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, path, strategy, chunk_count, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			path = excluded.path,
			strategy = excluded.strategy,
			chunk_count = excluded.chunk_count,
			indexed_at = excluded.indexed_at
	`, doc.ID, doc.Title, doc.Path, doc.Strategy, doc.ChunkCount, doc.IndexedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, path, strategy, chunk_count, indexed_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	var indexedAt sql.NullTime
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Path, &doc.Strategy,
		&doc.ChunkCount, &indexedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	if indexedAt.Valid {
		doc.IndexedAt = indexedAt.Time
	}

	return &doc, nil
}

// ListDocuments returns all indexed documents ordered by id.
func (s *documentStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, path, strategy, chunk_count, indexed_at
		FROM documents ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var indexedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Path, &doc.Strategy,
			&doc.ChunkCount, &indexedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if indexedAt.Valid {
			doc.IndexedAt = indexedAt.Time
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// ==================== Analysis Store ====================

// analysisStore implements driven.AnalysisStore.
type analysisStore struct {
	store *Store
}

var _ driven.AnalysisStore = (*analysisStore)(nil)

// SaveAnalysis stores a completed analysis.
func (s *analysisStore) SaveAnalysis(ctx context.Context, analysis domain.Analysis) error {
	if analysis.ID == "" {
		return domain.ErrInvalidInput
	}

	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO analyses (id, kind, fund_id, norm_id, answer, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, analysis.ID, string(analysis.Kind), analysis.FundID, analysis.NormID,
		analysis.Answer, analysis.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

// ListAnalyses returns the most recent analyses, newest first.
// A limit of zero or less returns all of them.
func (s *analysisStore) ListAnalyses(ctx context.Context, limit int) ([]domain.Analysis, error) {
	query := `
		SELECT id, kind, fund_id, norm_id, answer, created_at
		FROM analyses ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var analyses []domain.Analysis //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Analysis
		var kind string
		var createdAt sql.NullTime
		if err := rows.Scan(&a.ID, &kind, &a.FundID, &a.NormID, &a.Answer, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		a.Kind = domain.AnalysisKind(kind)
		if createdAt.Valid {
			a.CreatedAt = createdAt.Time
		}
		analyses = append(analyses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}

	return analyses, nil
}
