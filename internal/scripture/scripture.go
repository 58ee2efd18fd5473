// Package scripture resolves Bible references to verse text. Verses live
// in a SQLite database seeded from an embedded public-domain (KJV)
// excerpt set; resolved references are cached in memory. An unresolvable
// reference is not an error: Resolve returns nil and the caller keeps the
// bare reference.
package scripture

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"lyriclens/internal/analysis"
	"lyriclens/internal/logging"
)

//go:embed verses.tsv
var seedVerses string

// Store is a SQLite-backed scripture resolver with a read-through cache.
type Store struct {
	db    *sql.DB
	mu    sync.RWMutex
	cache map[string]string // normalized reference -> verse text
}

// Open initializes the verse database at path, creating and seeding it on
// first use. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, cache: make(map[string]string)}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS verses (
		reference TEXT PRIMARY KEY,
		text      TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("failed to create verses table: %w", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM verses`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO verses (reference, text) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	seeded := 0
	for _, line := range strings.Split(seedVerses, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ref, text, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		if _, err := stmt.Exec(Normalize(ref), text); err != nil {
			return err
		}
		seeded++
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logging.Scripture("seeded %d verses", seeded)
	return nil
}

// Resolve looks up verse text for a reference. Returns (nil, nil) when the
// reference is unknown.
func (s *Store) Resolve(ctx context.Context, reference string) (*analysis.ScriptureRef, error) {
	norm := Normalize(reference)
	if norm == "" {
		return nil, nil
	}

	s.mu.RLock()
	text, hit := s.cache[norm]
	s.mu.RUnlock()

	if !hit {
		err := s.db.QueryRowContext(ctx, `SELECT text FROM verses WHERE reference = ?`, norm).Scan(&text)
		if err == sql.ErrNoRows {
			logging.Scripture("no verse text for %q", norm)
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("verse lookup for %q: %w", norm, err)
		}
		s.mu.Lock()
		s.cache[norm] = text
		s.mu.Unlock()
	}

	return &analysis.ScriptureRef{Reference: norm, Text: text}, nil
}

// AddVerse inserts or replaces a verse, normalizing the reference.
func (s *Store) AddVerse(reference, text string) error {
	norm := Normalize(reference)
	if norm == "" {
		return fmt.Errorf("unparseable reference %q", reference)
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO verses (reference, text) VALUES (?, ?)`, norm, text)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cache[norm] = text
	s.mu.Unlock()
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
