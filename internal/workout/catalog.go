package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/plan"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/internal/workoutlog"

	"go.opentelemetry.io/otel/attribute"
)

// CustomKey holds the user built plans as one JSON array.
const CustomKey = "customWorkouts"

var ErrPlanNotFound = errors.New("workout plan not found")

func CannedPlans() []plan.Plan {
	return []plan.Plan{
		{
			ID:         "1",
			Name:       "Upper Body Blast",
			Duration:   "45 min",
			Difficulty: plan.Intermediate,
			Type:       "Strength",
			Exercises: []plan.ExerciseEntry{
				{Name: "Push-ups", Sets: 4, Reps: "12"},
				{Name: "Dumbbell Rows", Sets: 4, Reps: "10"},
				{Name: "Shoulder Press", Sets: 3, Reps: "12"},
				{Name: "Bicep Curls", Sets: 3, Reps: "15"},
				{Name: "Tricep Dips", Sets: 3, Reps: "12"},
			},
			ScheduledFor: "Monday",
		},
		{
			ID:         "2",
			Name:       "Lower Body Power",
			Duration:   "40 min",
			Difficulty: plan.Intermediate,
			Type:       "Strength",
			Exercises: []plan.ExerciseEntry{
				{Name: "Squats", Sets: 4, Reps: "12"},
				{Name: "Lunges", Sets: 3, Reps: "12"},
				{Name: "Leg Press", Sets: 4, Reps: "10"},
				{Name: "Calf Raises", Sets: 3, Reps: "15"},
				{Name: "Leg Curls", Sets: 3, Reps: "12"},
			},
			ScheduledFor: "Wednesday",
		},
		{
			ID:         "3",
			Name:       "Cardio & Core",
			Duration:   "30 min",
			Difficulty: plan.Beginner,
			Type:       "Cardio",
			Exercises: []plan.ExerciseEntry{
				{Name: "Burpees", Sets: 3, Reps: "10"},
				{Name: "Mountain Climbers", Sets: 3, Reps: "20"},
				{Name: "Plank", Sets: 3, Reps: "60s"},
				{Name: "Russian Twists", Sets: 3, Reps: "20"},
				{Name: "Jumping Jacks", Sets: 3, Reps: "30"},
			},
			ScheduledFor: "Friday",
		},
	}
}

// Catalog lists canned and custom plans. A plan's completed flag is true
// when the workout log holds an entry for it from the current week.
type Catalog struct {
	store kvstore.Store
	now   func() time.Time
}

func NewCatalog(store kvstore.Store, now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}
	return &Catalog{
		store: store,
		now:   now,
	}
}

func (c *Catalog) Plans(ctx context.Context) (_ []plan.Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.catalog.plans")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var plans []plan.Plan
	err = kvstore.View(ctx, c.store, []string{CustomKey, workoutlog.Key}, func(r kvstore.Reader) error {
		var err error
		plans, err = c.plansFrom(ctx, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("plans", len(plans)))

	return plans, nil
}

// plansFrom builds the plan list from r, which must cover CustomKey and the log.
func (c *Catalog) plansFrom(ctx context.Context, r kvstore.Reader) ([]plan.Plan, error) {
	custom, err := readCustom(ctx, r)
	if err != nil {
		return nil, err
	}
	entries, err := workoutlog.Read(ctx, r)
	if err != nil {
		return nil, err
	}

	doneThisWeek := make(map[string]bool)
	since := WeekStart(c.now())
	for _, e := range entries {
		if !e.CompletedAt.Before(since) {
			doneThisWeek[e.ID] = true
		}
	}

	plans := append(CannedPlans(), custom...)
	for i := range plans {
		plans[i].Completed = doneThisWeek[plans[i].ID]
	}
	return plans, nil
}

func (c *Catalog) Find(ctx context.Context, id string) (plan.Plan, error) {
	plans, err := c.Plans(ctx)
	if err != nil {
		return plan.Plan{}, err
	}
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return plan.Plan{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
}

func (c *Catalog) Custom(ctx context.Context) ([]plan.Plan, error) {
	return readCustom(ctx, c.store)
}

func readCustom(ctx context.Context, r kvstore.Reader) ([]plan.Plan, error) {
	var custom []plan.Plan
	if _, err := kvstore.GetJSON(ctx, r, CustomKey, &custom); err != nil {
		return nil, fmt.Errorf("read custom workouts: %w", err)
	}
	return custom, nil
}

func (c *Catalog) AddCustom(ctx context.Context, p plan.Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.catalog.add_custom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return c.store.Update(ctx, []string{CustomKey}, func(tx kvstore.Tx) error {
		custom, err := readCustom(ctx, tx)
		if err != nil {
			return err
		}
		return kvstore.PutJSON(tx, CustomKey, append(custom, p.Clone()))
	})
}

// WeekStart returns Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -daysSinceMonday).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
