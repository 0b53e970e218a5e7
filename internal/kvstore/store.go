package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrUndeclaredKey = errors.New("key not declared in transaction")
	ErrTxConflict    = errors.New("transaction conflict")
)

// Reader is implemented by both Store and Tx.
type Reader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Store is a string-keyed store of opaque values. Update runs fn as one
// atomic unit over the declared keys: either every write of fn lands or none.
type Store interface {
	Reader
	Exists(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Update(ctx context.Context, keys []string, fn func(tx Tx) error) error
	Close() error
}

// Tx buffers writes until the surrounding Update commits. Only keys declared
// when the transaction started may be touched.
type Tx interface {
	Reader
	Set(key string, value []byte) error
	Delete(key string) error
}

// View runs fn over one consistent snapshot of the declared keys. It is a
// write-free Update, so readers never see half of a concurrent transaction.
func View(ctx context.Context, s Store, keys []string, fn func(r Reader) error) error {
	return s.Update(ctx, keys, func(tx Tx) error {
		return fn(tx)
	})
}

// GetJSON decodes the value under key into dst. Reports false when the key is absent.
func GetJSON(ctx context.Context, r Reader, key string, dst any) (bool, error) {
	raw, err := r.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode [%s]: %w", key, err)
	}
	return true, nil
}

func PutJSON(tx Tx, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode [%s]: %w", key, err)
	}
	return tx.Set(key, raw)
}

type change struct {
	key     string
	value   []byte
	deleted bool
}

// txBuffer is the Tx shared by all engines: reads fall through to the
// engine until the key is written inside the transaction.
type txBuffer struct {
	declared map[string]struct{}
	read     func(ctx context.Context, key string) ([]byte, error)
	pending  map[string]*change
	order    []string
}

func newTxBuffer(keys []string, read func(ctx context.Context, key string) ([]byte, error)) *txBuffer {
	declared := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		declared[k] = struct{}{}
	}
	return &txBuffer{
		declared: declared,
		read:     read,
		pending:  map[string]*change{},
	}
}

func (b *txBuffer) check(key string) error {
	if _, ok := b.declared[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUndeclaredKey, key)
	}
	return nil
}

func (b *txBuffer) Get(ctx context.Context, key string) ([]byte, error) {
	if err := b.check(key); err != nil {
		return nil, err
	}
	if c, ok := b.pending[key]; ok {
		if c.deleted {
			return nil, ErrNotFound
		}
		return append([]byte(nil), c.value...), nil
	}
	return b.read(ctx, key)
}

func (b *txBuffer) Set(key string, value []byte) error {
	if err := b.check(key); err != nil {
		return err
	}
	b.stage(&change{key: key, value: append([]byte(nil), value...)})
	return nil
}

func (b *txBuffer) Delete(key string) error {
	if err := b.check(key); err != nil {
		return err
	}
	b.stage(&change{key: key, deleted: true})
	return nil
}

func (b *txBuffer) stage(c *change) {
	if _, ok := b.pending[c.key]; !ok {
		b.order = append(b.order, c.key)
	}
	b.pending[c.key] = c
}

func (b *txBuffer) changes() []change {
	res := make([]change, 0, len(b.order))
	for _, k := range b.order {
		res = append(res, *b.pending[k])
	}
	return res
}
