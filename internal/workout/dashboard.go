package workout

import (
	"context"
	"math"

	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/plan"
	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/internal/workoutlog"
)

const WeeklyGoal = 4

type Dashboard struct {
	Profile           profile.Profile `json:"profile"`
	Plans             []plan.Plan     `json:"plans"`
	WeeklyGoal        int             `json:"weeklyGoal"`
	CompletedThisWeek int             `json:"completedThisWeek"`
	// WeeklyProgress in percent, capped at 100.
	WeeklyProgress float64 `json:"weeklyProgress"`
	WorkoutsLeft   int     `json:"workoutsLeft"`
}

// LoadDashboard reads the profile and the plans from one store snapshot.
func LoadDashboard(ctx context.Context, catalog *Catalog) (_ Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		user  profile.Profile
		plans []plan.Plan
	)
	keys := []string{profile.Key, workoutlog.Key, CustomKey}
	err = kvstore.View(ctx, catalog.store, keys, func(r kvstore.Reader) error {
		var err error
		if user, err = profile.Read(ctx, r); err != nil {
			return err
		}
		plans, err = catalog.plansFrom(ctx, r)
		return err
	})
	if err != nil {
		return Dashboard{}, err
	}

	completed := 0
	for _, p := range plans {
		if p.Completed {
			completed++
		}
	}

	return Dashboard{
		Profile:           user,
		Plans:             plans,
		WeeklyGoal:        WeeklyGoal,
		CompletedThisWeek: completed,
		WeeklyProgress:    math.Min(100, float64(completed)*100/WeeklyGoal),
		WorkoutsLeft:      max(0, WeeklyGoal-completed),
	}, nil
}
