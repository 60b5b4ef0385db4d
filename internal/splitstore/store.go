package splitstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"asrscore/internal/config"
	"asrscore/internal/refs"
	"asrscore/internal/services"
)

// Store manages split-cache persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Split is one cached reference build.
type Split struct {
	Name             string
	ManifestChecksum string
	BuiltAt          time.Time
	NUtterances      int
}

// ErrSplitNotFound reports a split name absent from the cache.
var ErrSplitNotFound = errors.New("split not found")

// Open initializes or connects to the split-cache database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.CacheDir, "splits.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSplit replaces any cached build of the named split with the given
// reference set. Raw manifest text is kept alongside the normalized variants
// when provided so the cache can answer provenance questions.
func (s *Store) SaveSplit(ctx context.Context, name, checksum string, set *refs.Set, rawByID map[string]string) error {
	if name == "" {
		return errors.New("split name required")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin split tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM splits WHERE name = ?", name); err != nil {
		return fmt.Errorf("clear split: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO splits (name, manifest_checksum, built_at) VALUES (?, ?, ?)",
		name, checksum, timestamp,
	); err != nil {
		return fmt.Errorf("insert split: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO utterances (
        split, seq, utt_id, raw_text, ref_with_disfluency, ref_without_disfluency
    ) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare utterance insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range set.WithDisfluency {
		if _, err := stmt.ExecContext(ctx,
			name, i, entry.ID, rawByID[entry.ID],
			entry.Text, set.WithoutDisfluency[i].Text,
		); err != nil {
			return fmt.Errorf("insert utterance %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit split: %w", err)
	}
	return nil
}

// GetSplit fetches the cache row for a split name.
func (s *Store) GetSplit(ctx context.Context, name string) (*Split, error) {
	var split Split
	var builtAt string
	err := s.db.QueryRowContext(ctx, `SELECT name, manifest_checksum, built_at,
        (SELECT COUNT(1) FROM utterances WHERE split = splits.name)
        FROM splits WHERE name = ?`, name,
	).Scan(&split.Name, &split.ManifestChecksum, &builtAt, &split.NUtterances)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSplitNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get split: %w", err)
	}
	if parsed, parseErr := time.Parse(time.RFC3339Nano, builtAt); parseErr == nil {
		split.BuiltAt = parsed
	}
	return &split, nil
}

// LoadReferences rebuilds the reference set for a cached split, in build
// order with regenerated sequential tags.
func (s *Store) LoadReferences(ctx context.Context, name string) (*refs.Set, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, utt_id,
        ref_with_disfluency, ref_without_disfluency
        FROM utterances WHERE split = ? ORDER BY seq`, name)
	if err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}
	defer rows.Close()

	set := &refs.Set{}
	for rows.Next() {
		var seq int
		var id, withDisfl, withoutDisfl string
		if err := rows.Scan(&seq, &id, &withDisfl, &withoutDisfl); err != nil {
			return nil, fmt.Errorf("scan utterance: %w", err)
		}
		tag := refs.Tag(seq)
		set.WithDisfluency = append(set.WithDisfluency, refs.Entry{Tag: tag, ID: id, Text: withDisfl})
		set.WithoutDisfluency = append(set.WithoutDisfluency, refs.Entry{Tag: tag, ID: id, Text: withoutDisfl})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate utterances: %w", err)
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSplitNotFound, name)
	}
	return set, nil
}

// IsNotFound reports whether err means an absent split.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSplitNotFound) || errors.Is(err, services.ErrNotFound)
}
