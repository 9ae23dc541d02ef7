// Package store handles SQLite persistence of analyzer results.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/latintextid/internal/morph"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for cached word analyses. It implements
// morph.Cache.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ morph.Cache = (*Store)(nil)

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			source TEXT NOT NULL,
			word TEXT NOT NULL,
			stem TEXT NOT NULL,
			substantive INTEGER NOT NULL,
			resolved_at TEXT NOT NULL,
			PRIMARY KEY (source, word)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_stem ON analyses(stem);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the cached analysis of word produced by source.
func (s *Store) Lookup(ctx context.Context, source, word string) (morph.Resolution, bool, error) {
	var res morph.Resolution
	var substantive int
	err := s.db.QueryRowContext(ctx,
		`SELECT stem, substantive FROM analyses WHERE source = ? AND word = ?`,
		source, word,
	).Scan(&res.Stem, &substantive)
	if errors.Is(err, sql.ErrNoRows) {
		return morph.Resolution{}, false, nil
	}
	if err != nil {
		return morph.Resolution{}, false, err
	}
	res.Substantive = substantive != 0
	return res, true, nil
}

// Save records the analysis of word, replacing any earlier entry.
func (s *Store) Save(ctx context.Context, source, word string, res morph.Resolution) error {
	substantive := 0
	if res.Substantive {
		substantive = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (source, word, stem, substantive, resolved_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source, word) DO UPDATE SET
			stem = excluded.stem,
			substantive = excluded.substantive,
			resolved_at = excluded.resolved_at`,
		source, word, res.Stem, substantive, s.now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// SourceStats summarizes the cache content of one source.
type SourceStats struct {
	Source     string
	Words      int
	Unresolved int
	LastSaved  time.Time
}

// ListSources returns per-source cache statistics ordered by source.
func (s *Store) ListSources(ctx context.Context) ([]SourceStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(*), SUM(CASE WHEN TRIM(stem) = '' THEN 1 ELSE 0 END), MAX(resolved_at)
		 FROM analyses
		 GROUP BY source
		 ORDER BY source ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []SourceStats
	for rows.Next() {
		var st SourceStats
		var last string
		if err := rows.Scan(&st.Source, &st.Words, &st.Unresolved, &last); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, last)
		if err != nil {
			return nil, err
		}
		st.LastSaved = parsed
		result = append(result, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Purge deletes every cached analysis of source and reports how many rows
// were removed.
func (s *Store) Purge(ctx context.Context, source string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE source = ?`, source)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
