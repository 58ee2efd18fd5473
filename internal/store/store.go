// Package store persists analysis results in SQLite. Every analysis is a
// new row; there is no update-in-place, matching the immutable result
// lifecycle. The store is a local history cache for the CLI, not a shared
// schema.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"lyriclens/internal/analysis"
	"lyriclens/internal/logging"
)

// ResultStore records completed analyses.
type ResultStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Summary is the light row returned by listings.
type Summary struct {
	ID           string
	Title        string
	Artist       string
	FinalScore   float64
	QualityLevel analysis.QualityLevel
	CreatedAt    time.Time
}

// Open initializes the result database at path. Use ":memory:" in tests.
func Open(path string) (*ResultStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &ResultStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *ResultStore) initialize() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS results (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		artist        TEXT NOT NULL,
		final_score   REAL NOT NULL,
		quality_level TEXT NOT NULL,
		payload       TEXT NOT NULL,
		created_at    DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at);
	CREATE INDEX IF NOT EXISTS idx_results_title ON results(title, artist);
	`)
	if err != nil {
		return fmt.Errorf("failed to create results table: %w", err)
	}
	return nil
}

// Save inserts one result.
func (s *ResultStore) Save(ctx context.Context, r *analysis.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (id, title, artist, final_score, quality_level, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Artist, r.FinalScore, string(r.QualityLevel), string(payload), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	logging.Store("saved result %s (%s - %s, %.1f %s)", r.ID, r.Artist, r.Title, r.FinalScore, r.QualityLevel)
	return nil
}

// Get loads one result by id. Returns (nil, nil) when absent.
func (s *ResultStore) Get(ctx context.Context, id string) (*analysis.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM results WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load result %s: %w", id, err)
	}
	var r analysis.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", id, err)
	}
	return &r, nil
}

// ListRecent returns the newest results first, up to limit.
func (s *ResultStore) ListRecent(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, artist, final_score, quality_level, created_at
		 FROM results ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		var level string
		if err := rows.Scan(&sm.ID, &sm.Title, &sm.Artist, &sm.FinalScore, &level, &sm.CreatedAt); err != nil {
			return nil, err
		}
		sm.QualityLevel = analysis.QualityLevel(level)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// DeleteOlderThan prunes results created before the cutoff and reports
// how many rows were removed.
func (s *ResultStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune results: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database handle.
func (s *ResultStore) Close() error {
	return s.db.Close()
}
