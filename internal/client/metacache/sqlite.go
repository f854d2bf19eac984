package metacache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dkrasnovs/skyvault/internal/client/metacache/migrations"
	"github.com/dkrasnovs/skyvault/internal/common"
	"github.com/dkrasnovs/skyvault/internal/dbx"
	"github.com/pressly/goose/v3"
)

// Store is the persistence behind the cache.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// SQLiteStore implements Store using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteStore struct {
	db dbx.DBTX
}

// NewSQLiteStore returns a SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the cached value for key, or common.ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	query := `select value from metadata_cache where key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to select cache entry: %w", err)
	}
	return value, nil
}

// Put upserts a cache entry.
func (s *SQLiteStore) Put(ctx context.Context, key, value string) error {
	query := `insert into metadata_cache (key, value, created_at) values (?, ?, ?)
			on conflict(key) do update set value = excluded.value, created_at = excluded.created_at`

	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert cache entry: %w", err)
	}
	return nil
}

// ownerKey is the reserved cache row recording which account the
// persistent cache belongs to.
const ownerKey = "meta:owner"

// BindAccount ties the persistent cache to an account. When the stored
// owner differs from email, all cached plaintext is dropped first so
// entries never leak across accounts. Check and cleanup run in one
// transaction; cleared reports whether a wipe happened.
func BindAccount(ctx context.Context, db *sql.DB, email string) (cleared bool, err error) {
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var owner string
		err := tx.QueryRowContext(ctx, `select value from metadata_cache where key = ?`, ownerKey).Scan(&owner)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to select cache owner: %w", err)
		}

		if owner != "" && owner != email {
			if _, err := tx.ExecContext(ctx, `delete from metadata_cache`); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			cleared = true
		}

		query := `insert into metadata_cache (key, value, created_at) values (?, ?, ?)
				on conflict(key) do update set value = excluded.value, created_at = excluded.created_at`
		if _, err := tx.ExecContext(ctx, query, ownerKey, email, time.Now().UnixMilli()); err != nil {
			return fmt.Errorf("failed to record cache owner: %w", err)
		}
		return nil
	})
	return cleared, err
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local cache database and
// migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
