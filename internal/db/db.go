// Package db provides PostgreSQL access for the remote site document.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// SiteDataTable is the table holding site documents.
	SiteDataTable = "site_data"
	// MainDocumentID is the row key of the one document the site uses.
	MainDocumentID = "main"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
// A non-empty password overrides whatever the URL carries.
func Connect(ctx context.Context, databaseURL, password string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if password != "" {
		cfg.ConnConfig.Password = password
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
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

// EnsureSchema creates the site_data table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS site_data (
			id TEXT PRIMARY KEY,
			content JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	)
	if err != nil {
		return fmt.Errorf("failed to create %s table: %w", SiteDataTable, err)
	}
	return nil
}

// GetDocument retrieves the raw JSON content of a document.
// Returns nil, nil when no row exists.
func (db *DB) GetDocument(ctx context.Context, id string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM site_data WHERE id = $1`,
		id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return content, nil
}

// DocumentUpdatedAt returns when a document was last written.
// Returns nil, nil when no row exists.
func (db *DB) DocumentUpdatedAt(ctx context.Context, id string) (*time.Time, error) {
	var updatedAt time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT updated_at FROM site_data WHERE id = $1`,
		id,
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s timestamp: %w", id, err)
	}
	return &updatedAt, nil
}

// ReplaceDocument deletes any existing row and inserts content in one transaction.
func (db *DB) ReplaceDocument(ctx context.Context, id string, content []byte) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	// deleting nothing is the first-run case
	if _, err := tx.Exec(ctx, `DELETE FROM site_data WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO site_data (id, content, updated_at) VALUES ($1, $2, NOW())`,
		id, content,
	); err != nil {
		return fmt.Errorf("failed to insert document %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document %s: %w", id, err)
	}
	return nil
}

// DeleteDocument removes a document. Missing rows are not an error.
func (db *DB) DeleteDocument(ctx context.Context, id string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM site_data WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	return nil
}
