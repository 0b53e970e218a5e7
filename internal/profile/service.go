package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/plan"
	"github.com/2beens/getfitpro/internal/telemetry/metrics"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/internal/workoutlog"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=profile_test

type progressResetter interface {
	ResetProgress(ctx context.Context, userID string) error
}

type ServiceOptions struct {
	// TrackLongestStreak raises longestStreak whenever currentStreak passes it.
	TrackLongestStreak bool
	Now                func() time.Time
}

type ResetResult struct {
	Profile            Profile `json:"profile"`
	RemoteAcknowledged bool    `json:"remoteAcknowledged"`
	RemoteError        string  `json:"remoteError,omitempty"`
}

// Service owns every write touching the profile counters. Completions and
// resets are serialized and each runs as one store transaction.
type Service struct {
	mu       sync.Mutex
	store    kvstore.Store
	repo     *Repo
	resetter progressResetter
	metrics  *metrics.Manager
	opts     ServiceOptions
}

func NewService(
	store kvstore.Store,
	resetter progressResetter,
	metricsManager *metrics.Manager,
	opts ServiceOptions,
) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:    store,
		repo:     NewRepo(store),
		resetter: resetter,
		metrics:  metricsManager,
		opts:     opts,
	}
}

func (s *Service) Load(ctx context.Context) (Profile, error) {
	return s.repo.Load(ctx)
}

func (s *Service) Save(ctx context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Save(ctx, p)
}

func (s *Service) Update(ctx context.Context, patch Patch) (_ Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated Profile
	err = s.store.Update(ctx, []string{Key}, func(tx kvstore.Tx) error {
		current, err := Read(ctx, tx)
		if err != nil {
			return err
		}
		updated, err = current.Apply(patch)
		if err != nil {
			return err
		}
		return WriteTx(tx, updated)
	})
	if err != nil {
		return Profile{}, err
	}
	return updated, nil
}

// RecordCompletion appends a snapshot of p to the workout log and bumps
// totalWorkouts and currentStreak, all in one transaction.
func (s *Service) RecordCompletion(ctx context.Context, p plan.Plan) (_ Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.record_completion")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", p.ID))

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := workoutlog.NewEntry(p, s.opts.Now())

	var updated Profile
	err = s.store.Update(ctx, []string{Key, workoutlog.Key}, func(tx kvstore.Tx) error {
		current, err := Read(ctx, tx)
		if err != nil {
			return err
		}
		if err := workoutlog.AppendTx(ctx, tx, entry); err != nil {
			return err
		}

		current.TotalWorkouts++
		current.CurrentStreak++
		if s.opts.TrackLongestStreak && current.CurrentStreak > current.LongestStreak {
			current.LongestStreak = current.CurrentStreak
		}
		updated = current
		return WriteTx(tx, current)
	})
	if err != nil {
		return Profile{}, fmt.Errorf("record completion: %w", err)
	}

	s.metrics.CounterWorkoutsCompleted.Inc()
	log.Debugf("workout [%s] completed, total workouts: %d", p.ID, updated.TotalWorkouts)
	return updated, nil
}

// ResetProgress asks the coach backend to reset first. Its failure is only
// reported; the local reset of counters and log happens regardless.
func (s *Service) ResetProgress(ctx context.Context) (_ ResetResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.reset_progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return ResetResult{}, err
	}

	result := ResetResult{RemoteAcknowledged: true}
	if remoteErr := s.resetter.ResetProgress(ctx, current.ID); remoteErr != nil {
		log.Warnf("remote progress reset for [%s] failed, resetting locally only: %s", current.ID, remoteErr)
		s.metrics.CounterCoachFailures.WithLabelValues("reset_progress").Inc()
		span.SetAttributes(attribute.Bool("remote.acknowledged", false))
		result.RemoteAcknowledged = false
		result.RemoteError = remoteErr.Error()
	}

	err = s.store.Update(ctx, []string{Key, workoutlog.Key}, func(tx kvstore.Tx) error {
		p, err := Read(ctx, tx)
		if err != nil {
			return err
		}
		p.TotalWorkouts = 0
		p.CurrentStreak = 0
		result.Profile = p
		if err := WriteTx(tx, p); err != nil {
			return err
		}
		return workoutlog.ClearTx(tx)
	})
	if err != nil {
		return ResetResult{}, fmt.Errorf("reset progress: %w", err)
	}

	s.metrics.CounterProgressResets.Inc()
	return result, nil
}
