package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/2beens/getfitpro/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv_record (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const postgresUpsert = `
INSERT INTO kv_record (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;`

type pgQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, db *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := db.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	return postgresGet(ctx, s.db, key)
}

func postgresGet(ctx context.Context, q pgQuerier, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRow(ctx, `SELECT value FROM kv_record WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get [%s]: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM kv_record WHERE key = $1)`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("postgres exists [%s]: %w", key, err)
	}
	return exists, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	if _, err := s.db.Exec(ctx, postgresUpsert, key, value); err != nil {
		return fmt.Errorf("postgres set [%s]: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM kv_record WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres delete [%s]: %w", key, err)
	}
	return nil
}

// Update takes a transaction-scoped advisory lock per declared key, in sorted
// order, so concurrent updates over overlapping keys serialize even when the
// rows do not exist yet.
func (s *PostgresStore) Update(ctx context.Context, keys []string, fn func(tx Tx) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.StringSlice("keys", keys))

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("postgres begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Errorf("postgres rollback: %s", rbErr)
			}
			return
		}
		err = tx.Commit(ctx)
	}()

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	for _, k := range sorted {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, k); err != nil {
			return fmt.Errorf("postgres lock [%s]: %w", k, err)
		}
	}

	buf := newTxBuffer(keys, func(ctx context.Context, key string) ([]byte, error) {
		return postgresGet(ctx, tx, key)
	})
	if err := fn(buf); err != nil {
		return err
	}

	for _, c := range buf.changes() {
		if c.deleted {
			if _, err := tx.Exec(ctx, `DELETE FROM kv_record WHERE key = $1`, c.key); err != nil {
				return fmt.Errorf("postgres delete [%s]: %w", c.key, err)
			}
			continue
		}
		if _, err := tx.Exec(ctx, postgresUpsert, c.key, c.value); err != nil {
			return fmt.Errorf("postgres set [%s]: %w", c.key, err)
		}
	}

	return nil
}

// Close is a no-op, the pool is owned by the caller.
func (s *PostgresStore) Close() error {
	return nil
}
