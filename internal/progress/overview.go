package progress

import (
	"context"

	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/internal/workoutlog"

	"go.opentelemetry.io/otel/attribute"
)

const recentLimit = 5

type Overview struct {
	TotalWorkouts  int                `json:"totalWorkouts"`
	CurrentStreak  int                `json:"currentStreak"`
	LongestStreak  int                `json:"longestStreak"`
	LoggedWorkouts int                `json:"loggedWorkouts"`
	Recent         []workoutlog.Entry `json:"recent"`
	Summary        Summary            `json:"summary"`
	Bars           []Bar              `json:"bars"`
}

type Aggregator struct {
	store  kvstore.Store
	series []Point
}

func NewAggregator(store kvstore.Store) *Aggregator {
	return &Aggregator{
		store:  store,
		series: HistoricalSeries(),
	}
}

// Overview reads the profile and the workout log from one snapshot, so a
// logged workout is never shown without its counter update.
func (a *Aggregator) Overview(ctx context.Context) (_ Overview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.overview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		user    profile.Profile
		entries []workoutlog.Entry
	)
	err = kvstore.View(ctx, a.store, []string{profile.Key, workoutlog.Key}, func(r kvstore.Reader) error {
		var err error
		if user, err = profile.Read(ctx, r); err != nil {
			return err
		}
		entries, err = workoutlog.Read(ctx, r)
		return err
	})
	if err != nil {
		return Overview{}, err
	}
	span.SetAttributes(attribute.Int("entries", len(entries)))

	summary, err := Summarize(a.series)
	if err != nil {
		return Overview{}, err
	}
	bars, err := Bars(a.series)
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		TotalWorkouts:  user.TotalWorkouts,
		CurrentStreak:  user.CurrentStreak,
		LongestStreak:  user.LongestStreak,
		LoggedWorkouts: len(entries),
		Recent:         workoutlog.Recent(entries, recentLimit),
		Summary:        summary,
		Bars:           bars,
	}, nil
}
