package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/triplog/migrations"
)

// SQLMedium stores values in a kv_store table reached through database/sql.
// Statements use "?" placeholders, which SQLite accepts.
type SQLMedium struct {
	db *sql.DB
}

// NewSQLMedium wraps an open *sql.DB whose schema is already migrated.
func NewSQLMedium(db *sql.DB) *SQLMedium {
	return &SQLMedium{db: db}
}

// OpenSQLite opens (creating if needed) the SQLite database at path, applies
// migrations, and returns a medium over it plus the underlying *sql.DB for
// the caller to close.
func OpenSQLite(ctx context.Context, path string) (*SQLMedium, *sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("repo.OpenSQLite: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// One writer; a single connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}
	if err := Migrate(ctx, db, goose.DialectSQLite3, migrations.SQLite()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	return NewSQLMedium(db), db, nil
}

func (m *SQLMedium) Load(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_store WHERE key = ?`

	var value string
	if err := m.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("repo.SQLMedium.Load: %w", err)
	}
	return []byte(value), nil
}

func (m *SQLMedium) Save(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := m.db.ExecContext(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("repo.SQLMedium.Save: %w", err)
	}
	return nil
}
