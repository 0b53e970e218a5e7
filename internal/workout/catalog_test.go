package workout_test

import (
	"testing"
	"time"

	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/plan"
	"github.com/2beens/getfitpro/internal/workout"
	"github.com/2beens/getfitpro/internal/workoutlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, workout.WeekStart(fixedNow))
	assert.Equal(t, monday, workout.WeekStart(monday))
	assert.Equal(t, monday, workout.WeekStart(time.Date(2025, 1, 19, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, monday.AddDate(0, 0, 7), workout.WeekStart(time.Date(2025, 1, 20, 0, 0, 1, 0, time.UTC)))
}

func TestCatalog_CannedPlans(t *testing.T) {
	catalog := workout.NewCatalog(kvstore.NewMemoryStore(), func() time.Time { return fixedNow })

	plans, err := catalog.Plans(t.Context())
	require.NoError(t, err)
	require.Len(t, plans, 3)
	for _, p := range plans {
		assert.False(t, p.Completed, p.Name)
		assert.NoError(t, p.Validate())
	}
	assert.Equal(t, plan.Reps("60s"), plans[2].Exercises[2].Reps)
}

func TestCatalog_CompletedFlagsFromCurrentWeek(t *testing.T) {
	store := kvstore.NewMemoryStore()
	catalog := workout.NewCatalog(store, func() time.Time { return fixedNow })
	log := workoutlog.NewRepo(store)

	canned := workout.CannedPlans()
	// previous week
	require.NoError(t, log.Append(t.Context(), workoutlog.NewEntry(canned[0], fixedNow.AddDate(0, 0, -7))))
	// this week
	require.NoError(t, log.Append(t.Context(), workoutlog.NewEntry(canned[1], fixedNow.AddDate(0, 0, -1))))

	plans, err := catalog.Plans(t.Context())
	require.NoError(t, err)
	assert.False(t, plans[0].Completed)
	assert.True(t, plans[1].Completed)
	assert.False(t, plans[2].Completed)
}

func TestCatalog_AddCustomAndFind(t *testing.T) {
	catalog := workout.NewCatalog(kvstore.NewMemoryStore(), nil)

	custom := plan.Plan{
		ID:         "custom-1",
		Name:       "Arms",
		Duration:   "30 min",
		Difficulty: plan.Beginner,
		Type:       "Strength",
		Exercises:  []plan.ExerciseEntry{{Name: "Curls", Sets: 3, Reps: "10"}},
	}
	require.NoError(t, catalog.AddCustom(t.Context(), custom))

	plans, err := catalog.Plans(t.Context())
	require.NoError(t, err)
	require.Len(t, plans, 4)
	assert.Equal(t, "Arms", plans[3].Name)

	found, err := catalog.Find(t.Context(), "custom-1")
	require.NoError(t, err)
	assert.Equal(t, custom, found)

	_, err = catalog.Find(t.Context(), "nope")
	require.ErrorIs(t, err, workout.ErrPlanNotFound)
}

func TestCatalog_CorruptedCustomRecord(t *testing.T) {
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(t.Context(), workout.CustomKey, []byte("{broken")))

	_, err := workout.NewCatalog(store, nil).Plans(t.Context())
	require.Error(t, err)
}
