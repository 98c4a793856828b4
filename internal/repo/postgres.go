package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/triplog/migrations"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGMedium is the Postgres implementation of Medium.
// It holds one row per key; the ledger is still a single-writer document.
type PGMedium struct {
	db db
}

// NewPGMedium constructs a PGMedium backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGMedium(db db) *PGMedium {
	return &PGMedium{db: db}
}

// OpenPostgres connects to databaseURL, verifies the connection, applies
// migrations, and returns a medium plus the pool for the caller to close.
func OpenPostgres(ctx context.Context, databaseURL string) (*PGMedium, *pgxpool.Pool, error) {
	// New() does not open connections immediately; the Ping does.
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("repo.OpenPostgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("repo.OpenPostgres: ping: %w", err)
	}

	// goose needs database/sql; stdlib adapts the pool without a second connection set.
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()
	if err := Migrate(ctx, sqlDB, goose.DialectPostgres, migrations.Postgres()); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("repo.OpenPostgres: %w", err)
	}

	return NewPGMedium(pool), pool, nil
}

// Load reads the value stored under key.
func (m *PGMedium) Load(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_store WHERE key = @key`

	var value string
	err := m.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("repo.PGMedium.Load: %w", err)
	}
	return []byte(value), nil
}

// Save upserts the value stored under key.
func (m *PGMedium) Save(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	args := pgx.NamedArgs{
		"key":   key,
		"value": string(value),
	}

	tag, err := m.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.PGMedium.Save: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PGMedium.Save: no row written for key %q", key)
	}
	return nil
}
