// Package db provides PostgreSQL storage for the resume snapshot slot.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/resume-builder/internal/store"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ store.Snapshotter = (*DB)(nil)

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the snapshot table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resume_snapshots (
			key        TEXT PRIMARY KEY,
			content    TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create resume_snapshots table: %w", err)
	}
	return nil
}

// ReadSnapshot returns the serialized document stored under key, byte-for-byte as written
func (db *DB) ReadSnapshot(ctx context.Context, key string) ([]byte, error) {
	var content string
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM resume_snapshots WHERE key = $1`,
		key,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	return []byte(content), nil
}

// WriteSnapshot upserts the serialized document under key
func (db *DB) WriteSnapshot(ctx context.Context, key string, data []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_snapshots (key, content)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET content = $2, updated_at = NOW()`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}
