package workout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/getfitpro/internal/plan"
	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=builder_mocks_test.go -package=workout_test

const (
	defaultDuration   = "30"
	defaultDifficulty = plan.Intermediate
	defaultType       = "Strength"
	defaultSets       = 3
	defaultReps       = plan.Reps("10")
)

var (
	ErrInvalidWorkout = errors.New("invalid custom workout")
	ErrNotSynced      = errors.New("coach backend did not accept the workout")
)

type workoutCreator interface {
	CreateWorkout(ctx context.Context, userID string, p plan.Plan) error
}

type profileLoader interface {
	Load(ctx context.Context) (profile.Profile, error)
}

type CustomWorkoutRequest struct {
	Name         string               `json:"name"`
	Duration     string               `json:"duration"`
	Difficulty   plan.Difficulty      `json:"difficulty"`
	Type         string               `json:"type"`
	ScheduledFor string               `json:"scheduledFor"`
	Exercises    []plan.ExerciseEntry `json:"exercises"`
}

// Build turns a builder form into a plan. Exercises without a name are
// dropped; at least one must remain.
func Build(req CustomWorkoutRequest) (plan.Plan, error) {
	minutes := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(req.Duration), "min"))
	if minutes == "" {
		minutes = defaultDuration
	}
	if n, err := strconv.Atoi(minutes); err != nil || n <= 0 {
		return plan.Plan{}, fmt.Errorf("%w: duration must be a positive number of minutes, got %q", ErrInvalidWorkout, req.Duration)
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = defaultDifficulty
	}

	workoutType := strings.TrimSpace(req.Type)
	if workoutType == "" {
		workoutType = defaultType
	}

	exercises := make([]plan.ExerciseEntry, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			continue
		}
		if e.Sets <= 0 {
			e.Sets = defaultSets
		}
		if strings.TrimSpace(string(e.Reps)) == "" {
			e.Reps = defaultReps
		}
		exercises = append(exercises, e)
	}

	p := plan.Plan{
		ID:           "custom-" + uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Duration:     minutes + " min",
		Difficulty:   difficulty,
		Type:         workoutType,
		Exercises:    exercises,
		ScheduledFor: strings.TrimSpace(req.ScheduledFor),
	}
	if err := p.Validate(); err != nil {
		return plan.Plan{}, fmt.Errorf("%w: %w", ErrInvalidWorkout, err)
	}
	return p, nil
}

// Builder creates custom workouts. The coach backend must accept a plan
// before it is stored locally.
type Builder struct {
	catalog  *Catalog
	creator  workoutCreator
	profiles profileLoader
}

func NewBuilder(catalog *Catalog, creator workoutCreator, profiles profileLoader) *Builder {
	return &Builder{
		catalog:  catalog,
		creator:  creator,
		profiles: profiles,
	}
}

func (b *Builder) Create(ctx context.Context, req CustomWorkoutRequest) (_ plan.Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.builder.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := Build(req)
	if err != nil {
		return plan.Plan{}, err
	}

	user, err := b.profiles.Load(ctx)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("load profile: %w", err)
	}

	if err := b.creator.CreateWorkout(ctx, user.ID, p); err != nil {
		return plan.Plan{}, fmt.Errorf("%w: %w", ErrNotSynced, err)
	}

	if err := b.catalog.AddCustom(ctx, p); err != nil {
		return plan.Plan{}, fmt.Errorf("save custom workout: %w", err)
	}

	log.Debugf("custom workout [%s] %s created", p.ID, p.Name)
	return p, nil
}
