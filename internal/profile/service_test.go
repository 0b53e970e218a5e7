package profile_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/plan"
	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/telemetry/metrics"
	"github.com/2beens/getfitpro/internal/workoutlog"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 1, 15, 18, 30, 0, 0, time.UTC)

func cardioPlan() plan.Plan {
	return plan.Plan{
		ID:         "3",
		Name:       "Cardio & Core",
		Duration:   "30 min",
		Difficulty: plan.Beginner,
		Type:       "Cardio",
		Exercises: []plan.ExerciseEntry{
			{Name: "Burpees", Sets: 3, Reps: "10"},
			{Name: "Plank", Sets: 3, Reps: "60s"},
		},
	}
}

func newService(t *testing.T, store kvstore.Store, opts profile.ServiceOptions) (*profile.Service, *MockprogressResetter, *metrics.Manager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	resetter := NewMockprogressResetter(ctrl)
	m := metrics.NewTestManager()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return profile.NewService(store, resetter, m, opts), resetter, m
}

func TestService_RecordCompletion(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc, _, m := newService(t, store, profile.ServiceOptions{})
	ctx := context.Background()

	updated, err := svc.RecordCompletion(ctx, cardioPlan())
	require.NoError(t, err)
	assert.Equal(t, 48, updated.TotalWorkouts)
	assert.Equal(t, 6, updated.CurrentStreak)
	// longest streak is left alone unless tracking is on
	assert.Equal(t, 12, updated.LongestStreak)

	entries, err := workoutlog.NewRepo(store).All(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "3", entries[0].ID)
	assert.True(t, entries[0].Completed)
	assert.Equal(t, fixedNow, entries[0].CompletedAt)

	stored, err := profile.NewRepo(store).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterWorkoutsCompleted))
}

func TestService_RecordCompletion_TracksLongestStreak(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc, _, _ := newService(t, store, profile.ServiceOptions{TrackLongestStreak: true})
	ctx := context.Background()

	p := profile.Default()
	p.CurrentStreak = 12
	require.NoError(t, svc.Save(ctx, p))

	updated, err := svc.RecordCompletion(ctx, cardioPlan())
	require.NoError(t, err)
	assert.Equal(t, 13, updated.CurrentStreak)
	assert.Equal(t, 13, updated.LongestStreak)
}

func TestService_RecordCompletion_Concurrent(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc, _, _ := newService(t, store, profile.ServiceOptions{})
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordCompletion(ctx, cardioPlan())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 47+workers, p.TotalWorkouts)

	entries, err := workoutlog.NewRepo(store).All(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, workers)
}

func TestService_ResetProgress_RemoteAcknowledged(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc, resetter, m := newService(t, store, profile.ServiceOptions{})
	ctx := context.Background()

	_, err := svc.RecordCompletion(ctx, cardioPlan())
	require.NoError(t, err)

	resetter.EXPECT().ResetProgress(gomock.Any(), "user123").Return(nil)

	res, err := svc.ResetProgress(ctx)
	require.NoError(t, err)
	assert.True(t, res.RemoteAcknowledged)
	assert.Empty(t, res.RemoteError)
	assert.Zero(t, res.Profile.TotalWorkouts)
	assert.Zero(t, res.Profile.CurrentStreak)
	assert.Equal(t, 12, res.Profile.LongestStreak)
	assert.Equal(t, "John Doe", res.Profile.Name)

	entries, err := workoutlog.NewRepo(store).All(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterProgressResets))
}

func TestService_ResetProgress_RemoteFailureStillResetsLocally(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc, resetter, m := newService(t, store, profile.ServiceOptions{})
	ctx := context.Background()

	_, err := svc.RecordCompletion(ctx, cardioPlan())
	require.NoError(t, err)

	resetter.EXPECT().
		ResetProgress(gomock.Any(), "user123").
		Return(errors.New("coach unavailable"))

	res, err := svc.ResetProgress(ctx)
	require.NoError(t, err)
	assert.False(t, res.RemoteAcknowledged)
	assert.Equal(t, "coach unavailable", res.RemoteError)

	p, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, p.TotalWorkouts)
	assert.Zero(t, p.CurrentStreak)
	assert.Equal(t, 12, p.LongestStreak)

	entries, err := workoutlog.NewRepo(store).All(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterCoachFailures.WithLabelValues("reset_progress")))
}

func TestService_ResetProgress_StoreFailure(t *testing.T) {
	store := &brokenUpdateStore{Store: kvstore.NewMemoryStore()}
	svc, resetter, m := newService(t, store, profile.ServiceOptions{})

	resetter.EXPECT().ResetProgress(gomock.Any(), "user123").Return(nil)

	_, err := svc.ResetProgress(context.Background())
	assert.ErrorContains(t, err, "reset progress: write refused")
	assert.Zero(t, testutil.ToFloat64(m.CounterProgressResets))
}

func TestService_Update(t *testing.T) {
	svc, _, _ := newService(t, kvstore.NewMemoryStore(), profile.ServiceOptions{})
	ctx := context.Background()

	updated, err := svc.Update(ctx, profile.Patch{Name: ptr("Jane Roe")})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", updated.Name)

	_, err = svc.Update(ctx, profile.Patch{FitnessLevel: ptr("elite")})
	assert.ErrorIs(t, err, profile.ErrInvalidPatch)

	p, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", p.Name)
	assert.Equal(t, "intermediate", p.FitnessLevel)
}

type brokenUpdateStore struct {
	kvstore.Store
}

func (s *brokenUpdateStore) Update(context.Context, []string, func(tx kvstore.Tx) error) error {
	return errors.New("write refused")
}
