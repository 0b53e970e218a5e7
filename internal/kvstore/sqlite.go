package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/getfitpro/pkg"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_record (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

const sqliteUpsert = `
INSERT INTO kv_record (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`

// SQLiteStore keeps all records in a single local database file.
type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := pkg.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("sqlite dir: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite connect: %w", err)
	}
	// one writer at a time, transactions queue on the single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Debugf("sqlite store opened: %s", path)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	return sqliteGet(ctx, s.db, key)
}

func sqliteGet(ctx context.Context, q sqlx.QueryerContext, key string) ([]byte, error) {
	var value []byte
	err := sqlx.GetContext(ctx, q, &value, `SELECT value FROM kv_record WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite get [%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, key string) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM kv_record WHERE key = ?`, key); err != nil {
		return false, fmt.Errorf("sqlite exists [%s]: %w", key, err)
	}
	return count > 0, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, sqliteUpsert, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("sqlite set [%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_record WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite delete [%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, keys []string, fn func(tx Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Errorf("sqlite rollback: %s", rbErr)
			}
			return
		}
		err = tx.Commit()
	}()

	buf := newTxBuffer(keys, func(ctx context.Context, key string) ([]byte, error) {
		return sqliteGet(ctx, tx, key)
	})
	if err := fn(buf); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, c := range buf.changes() {
		if c.deleted {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv_record WHERE key = ?`, c.key); err != nil {
				return fmt.Errorf("sqlite delete [%s]: %w", c.key, err)
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, sqliteUpsert, c.key, c.value, now); err != nil {
			return fmt.Errorf("sqlite set [%s]: %w", c.key, err)
		}
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
