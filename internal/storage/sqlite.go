// Package storage caches fetched canonical reference lists in SQLite so a
// document's list is fetched from the bibliographic service once per
// session, not once per citation. The resolver core never touches this
// package; the CLI owns the cache lifetime.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fkguo/inspirecite/internal/reference"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite cache at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		-- One row per canonical entry, ordered by idx within a document.
		CREATE TABLE IF NOT EXISTS canonical_entries (
			doc_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			entry_id TEXT NOT NULL,
			label TEXT,
			authors_json TEXT,
			author_text TEXT,
			year TEXT,
			arxiv_id TEXT,
			doi TEXT,
			journal TEXT,
			volume TEXT,
			page TEXT,
			PRIMARY KEY (doc_id, idx)
		);

		-- Fetch bookkeeping per document.
		CREATE TABLE IF NOT EXISTS documents (
			doc_id TEXT PRIMARY KEY,
			fetched_at TEXT NOT NULL,
			entry_count INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// PutEntries replaces the cached canonical list for a document.
func (d *DB) PutEntries(docID string, entries []reference.CanonicalEntry) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM canonical_entries WHERE doc_id = ?`, docID); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO canonical_entries
			(doc_id, idx, entry_id, label, authors_json, author_text, year, arxiv_id, doi, journal, volume, page)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		authorsJSON, err := json.Marshal(e.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors for %s: %w", e.ID, err)
		}
		if _, err := stmt.Exec(docID, i, e.ID, e.Label, string(authorsJSON), e.AuthorText,
			e.Year, e.ArxivID, e.DOI, e.Journal, e.Volume, e.Page); err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.ID, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO documents (doc_id, fetched_at, entry_count) VALUES (?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET fetched_at = excluded.fetched_at, entry_count = excluded.entry_count`,
		docID, time.Now().UTC().Format(time.RFC3339), len(entries)); err != nil {
		return fmt.Errorf("recording document: %w", err)
	}

	return tx.Commit()
}

// GetEntries returns the cached canonical list for a document, or nil when
// the document has not been cached.
func (d *DB) GetEntries(docID string) ([]reference.CanonicalEntry, error) {
	rows, err := d.db.Query(`
		SELECT entry_id, label, authors_json, author_text, year, arxiv_id, doi, journal, volume, page
		FROM canonical_entries WHERE doc_id = ? ORDER BY idx`, docID)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []reference.CanonicalEntry
	for rows.Next() {
		var e reference.CanonicalEntry
		var authorsJSON string
		if err := rows.Scan(&e.ID, &e.Label, &authorsJSON, &e.AuthorText,
			&e.Year, &e.ArxivID, &e.DOI, &e.Journal, &e.Volume, &e.Page); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if authorsJSON != "" {
			if err := json.Unmarshal([]byte(authorsJSON), &e.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors for %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteDocument drops a document's cached list.
func (d *DB) DeleteDocument(docID string) error {
	if _, err := d.db.Exec(`DELETE FROM canonical_entries WHERE doc_id = ?`, docID); err != nil {
		return fmt.Errorf("deleting entries: %w", err)
	}
	if _, err := d.db.Exec(`DELETE FROM documents WHERE doc_id = ?`, docID); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ListDocuments returns the cached document ids with their entry counts.
func (d *DB) ListDocuments() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT doc_id, entry_count FROM documents ORDER BY doc_id`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}
