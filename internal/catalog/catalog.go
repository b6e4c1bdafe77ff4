// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists summaries of converted references in a SQLite
// database. The catalog is an optional index over the generated .tree
// files; conversion itself never depends on it.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bib2tree/pkg/types"
)

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	// "references" is an SQL keyword; the table is named refs.
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS refs (
		citekey TEXT PRIMARY KEY,
		title TEXT,
		authors TEXT,
		date TEXT,
		path TEXT,
		converted_at TEXT
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record upserts one converted reference, stamped with the current time.
func (s *Store) Record(ctx context.Context, ref types.Reference) error {
	authorsJSON, _ := json.Marshal(ref.Authors)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO refs (citekey, title, authors, date, path, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(citekey) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, date=excluded.date,
			path=excluded.path, converted_at=excluded.converted_at`,
		ref.CiteKey, ref.Title, string(authorsJSON), ref.Date, ref.Path,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", ref.CiteKey, err)
	}
	return nil
}

// List returns all cataloged references in citekey order.
func (s *Store) List(ctx context.Context) ([]types.Reference, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT citekey, title, authors, date, path FROM refs ORDER BY citekey`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var refs []types.Reference
	for rows.Next() {
		var ref types.Reference
		var authorsJSON string
		if err := rows.Scan(&ref.CiteKey, &ref.Title, &authorsJSON, &ref.Date, &ref.Path); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		if authorsJSON != "" {
			// Authors were marshaled by Record; a decode failure leaves them empty.
			_ = json.Unmarshal([]byte(authorsJSON), &ref.Authors)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
