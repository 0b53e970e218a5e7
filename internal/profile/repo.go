package profile

import (
	"context"
	"fmt"

	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
)

type Repo struct {
	store kvstore.Store
}

func NewRepo(store kvstore.Store) *Repo {
	return &Repo{store: store}
}

// Load returns the stored profile, or the default one when none was saved yet.
func (r *Repo) Load(ctx context.Context) (_ Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return Read(ctx, r.store)
}

// Save overwrites the whole record.
func (r *Repo) Save(ctx context.Context, p Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.store.Update(ctx, []string{Key}, func(tx kvstore.Tx) error {
		return WriteTx(tx, p)
	})
}

func Read(ctx context.Context, r kvstore.Reader) (Profile, error) {
	var p Profile
	found, err := kvstore.GetJSON(ctx, r, Key, &p)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	if !found {
		return Default(), nil
	}
	return p, nil
}

func WriteTx(tx kvstore.Tx, p Profile) error {
	return kvstore.PutJSON(tx, Key, p)
}
