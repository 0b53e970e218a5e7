package workoutlog

import (
	"context"
	"fmt"

	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// Repo stores the append-only log of completed workouts.
type Repo struct {
	store kvstore.Store
}

func NewRepo(store kvstore.Store) *Repo {
	return &Repo{store: store}
}

func (r *Repo) All(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := Read(ctx, r.store)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries, nil
}

func (r *Repo) Append(ctx context.Context, entry Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.append")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.store.Update(ctx, []string{Key}, func(tx kvstore.Tx) error {
		return AppendTx(ctx, tx, entry)
	})
}

// Drain empties the log and returns what it held, in one transaction.
func (r *Repo) Drain(ctx context.Context) (entries []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.drain")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.store.Update(ctx, []string{Key}, func(tx kvstore.Tx) error {
		entries, err = Read(ctx, tx)
		if err != nil {
			return err
		}
		return ClearTx(tx)
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries, nil
}

// Read loads the log from any reader, a missing record being an empty log.
func Read(ctx context.Context, r kvstore.Reader) ([]Entry, error) {
	var entries []Entry
	if _, err := kvstore.GetJSON(ctx, r, Key, &entries); err != nil {
		return nil, fmt.Errorf("read workout log: %w", err)
	}
	return entries, nil
}

// AppendTx appends inside a transaction that declared Key.
func AppendTx(ctx context.Context, tx kvstore.Tx, entry Entry) error {
	entries, err := Read(ctx, tx)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return kvstore.PutJSON(tx, Key, entries)
}

// ClearTx empties the log inside a transaction that declared Key.
func ClearTx(tx kvstore.Tx) error {
	return kvstore.PutJSON(tx, Key, []Entry{})
}

// Recent returns at most n entries of a log read, newest first.
func Recent(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) == 0 {
		return []Entry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	res := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		res = append(res, entries[i])
	}
	return res
}
