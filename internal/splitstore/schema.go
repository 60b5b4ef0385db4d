package splitstore

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current cache schema version. Everything in the cache
// can be rebuilt from split manifests, so a version change discards the old
// tables and starts fresh instead of failing the open.
const schemaVersion = 1

func (s *Store) initSchema(ctx context.Context) error {
	version, err := s.storedSchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version == schemaVersion {
		return nil
	}
	if version != 0 {
		if err := s.dropSchema(ctx); err != nil {
			return err
		}
	}
	return s.createSchema(ctx)
}

// storedSchemaVersion returns 0 for an empty database.
func (s *Store) storedSchemaVersion(ctx context.Context) (int, error) {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return 0, fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return 0, nil
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// dropSchema removes the stale tables ahead of a rebuild. Child tables go
// first so foreign keys never dangle mid-drop.
func (s *Store) dropSchema(ctx context.Context) error {
	for _, name := range []string{"runs", "utterances", "splits", "schema_version"} {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
			return fmt.Errorf("drop stale table %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
