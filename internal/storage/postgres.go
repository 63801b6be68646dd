package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"luxe-storefront/internal/config"
)

// DefaultMaxDocBytes caps a single document in the postgres backend. The
// largest legitimate documents are hero videos embedded as data URLs, which
// base64 inflates by a third over the 5 MiB upload ceiling.
const DefaultMaxDocBytes = 8 * 1024 * 1024

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS kv_documents (
		key        text PRIMARY KEY,
		doc        jsonb NOT NULL,
		revision   bigint NOT NULL DEFAULT 1,
		updated_at timestamptz NOT NULL DEFAULT now()
	)
`

// Postgres is a KV backend storing each document as a jsonb row. Upserts
// bump the row's revision; concurrent writers to the same key remain
// last-write-wins.
type Postgres struct {
	pool        *pgxpool.Pool
	maxDocBytes int
	logger      zerolog.Logger
}

// NewPool creates a PostgreSQL connection pool and verifies connectivity.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// NewPostgres creates a postgres-backed KV store, creating the documents
// table when absent. A maxDocBytes of zero or less applies DefaultMaxDocBytes.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool, maxDocBytes int, logger zerolog.Logger) (*Postgres, error) {
	if maxDocBytes <= 0 {
		maxDocBytes = DefaultMaxDocBytes
	}

	if _, err := pool.Exec(ctx, createDocumentsTable); err != nil {
		return nil, fmt.Errorf("failed to create kv_documents table: %w", err)
	}

	return &Postgres{
		pool:        pool,
		maxDocBytes: maxDocBytes,
		logger:      logger.With().Str("storage", "postgres").Logger(),
	}, nil
}

// Get returns the document stored under key, or ErrNotFound.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM kv_documents WHERE key = $1`, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Error().Err(err).Str("key", key).Msg("failed to query document")
		return nil, fmt.Errorf("%w: get %q: %v", ErrStorageFailure, key, err)
	}
	return doc, nil
}

// Set upserts the document under key, bumping its revision.
func (p *Postgres) Set(ctx context.Context, key string, doc []byte) error {
	if len(doc) > p.maxDocBytes {
		p.logger.Warn().
			Str("key", key).
			Int("doc_bytes", len(doc)).
			Int("max_doc_bytes", p.maxDocBytes).
			Msg("write rejected, document too large")
		return fmt.Errorf("%w: %d bytes for %q exceeds %d byte document ceiling", ErrQuotaExceeded, len(doc), key, p.maxDocBytes)
	}

	query := `
		INSERT INTO kv_documents (key, doc) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET doc = EXCLUDED.doc,
		    revision = kv_documents.revision + 1,
		    updated_at = now()
	`
	if _, err := p.pool.Exec(ctx, query, key, doc); err != nil {
		p.logger.Error().Err(err).Str("key", key).Msg("failed to upsert document")
		return fmt.Errorf("%w: set %q: %v", ErrStorageFailure, key, err)
	}
	return nil
}

// Remove deletes the document under key.
func (p *Postgres) Remove(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM kv_documents WHERE key = $1`, key); err != nil {
		p.logger.Error().Err(err).Str("key", key).Msg("failed to delete document")
		return fmt.Errorf("%w: remove %q: %v", ErrStorageFailure, key, err)
	}
	return nil
}

// Keys lists all keys holding a document.
func (p *Postgres) Keys(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT key FROM kv_documents ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("%w: list keys: %v", ErrStorageFailure, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: scan key: %v", ErrStorageFailure, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate keys: %v", ErrStorageFailure, err)
	}
	return keys, nil
}

// Revision returns the current revision of the document under key. It exists
// for conflict diagnostics; no store consults it during normal operation.
func (p *Postgres) Revision(ctx context.Context, key string) (int64, error) {
	var revision int64
	err := p.pool.QueryRow(ctx, `SELECT revision FROM kv_documents WHERE key = $1`, key).Scan(&revision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: revision %q: %v", ErrStorageFailure, key, err)
	}
	return revision, nil
}
