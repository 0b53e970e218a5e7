package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/getfitpro/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

const redisMaxTxAttempts = 5

type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		prefix: keyPrefix,
	}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	return redisGet(ctx, s.rdb, s.key(key))
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func redisGet(ctx context.Context, c redisGetter, key string) ([]byte, error) {
	val, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get [%s]: %w", key, err)
	}
	return val, nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.rdb.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists [%s]: %w", key, err)
	}
	return count > 0, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	if err := s.rdb.Set(ctx, s.key(key), string(value), 0).Err(); err != nil {
		return fmt.Errorf("redis set [%s]: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del [%s]: %w", key, err)
	}
	return nil
}

// Update runs fn under WATCH on the declared keys and commits its writes with
// MULTI/EXEC. A concurrent write to a watched key reruns fn, at most
// redisMaxTxAttempts times.
func (s *RedisStore) Update(ctx context.Context, keys []string, fn func(tx Tx) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.StringSlice("keys", keys))

	watched := make([]string, 0, len(keys))
	for _, k := range keys {
		watched = append(watched, s.key(k))
	}

	txFunc := func(rtx *redis.Tx) error {
		buf := newTxBuffer(keys, func(ctx context.Context, key string) ([]byte, error) {
			return redisGet(ctx, rtx, s.key(key))
		})
		if err := fn(buf); err != nil {
			return err
		}

		changes := buf.changes()

		// EXEC runs even for read-only transactions so a write to a watched
		// key between the reads fails the attempt.
		_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(changes) == 0 {
				pipe.Ping(ctx)
			}
			for _, c := range changes {
				if c.deleted {
					pipe.Del(ctx, s.key(c.key))
				} else {
					pipe.Set(ctx, s.key(c.key), string(c.value), 0)
				}
			}
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= redisMaxTxAttempts; attempt++ {
		err := s.rdb.Watch(ctx, txFunc, watched...)
		if errors.Is(err, redis.TxFailedErr) {
			span.SetAttributes(attribute.Int("attempt", attempt))
			continue
		}
		return err
	}

	return ErrTxConflict
}

// Close is a no-op, the client is owned by the caller.
func (s *RedisStore) Close() error {
	return nil
}
