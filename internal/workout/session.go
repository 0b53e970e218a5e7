package workout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/2beens/getfitpro/internal/plan"
	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=session_mocks_test.go -package=workout_test

var (
	ErrEmptyPlan      = errors.New("workout plan has no exercises")
	ErrAlreadyStarted = errors.New("workout already started")
	ErrNotStarted     = errors.New("workout not in progress")
	ErrExerciseIndex  = errors.New("exercise index out of range")
	ErrIncomplete     = errors.New("not all exercises are completed")
)

type completionRecorder interface {
	RecordCompletion(ctx context.Context, p plan.Plan) (profile.Profile, error)
}

type State int

const (
	NotStarted State = iota
	InProgress
	Finished
)

var stateNames = map[State]string{
	NotStarted: "not_started",
	InProgress: "in_progress",
	Finished:   "finished",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	if _, ok := stateNames[s]; !ok {
		return nil, fmt.Errorf("unknown session state %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

// View is a consistent snapshot of a session.
type View struct {
	Plan      plan.Plan `json:"plan"`
	State     State     `json:"state"`
	Completed []int     `json:"completedExercises"`
	// Progress in percent, rounded.
	Progress int `json:"progress"`
}

// Session walks one plan copy through NotStarted, InProgress and Finished.
// A finished session never goes back.
type Session struct {
	mu       sync.Mutex
	plan     plan.Plan
	state    State
	checked  []bool
	recorder completionRecorder
}

func NewSession(p plan.Plan, recorder completionRecorder) (*Session, error) {
	if len(p.Exercises) == 0 {
		return nil, ErrEmptyPlan
	}
	return &Session{
		plan:     p.Clone(),
		state:    NotStarted,
		checked:  make([]bool, len(p.Exercises)),
		recorder: recorder,
	}, nil
}

func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != NotStarted {
		return ErrAlreadyStarted
	}
	s.state = InProgress
	return nil
}

func (s *Session) ToggleExercise(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return ErrNotStarted
	}
	if i < 0 || i >= len(s.checked) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrExerciseIndex, i, len(s.checked))
	}
	s.checked[i] = !s.checked[i]
	return nil
}

// Progress is the checked fraction of exercises, in [0, 1].
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress()
}

// Complete records the workout. The log append and the profile counters are
// written in one transaction by the recorder; on failure the session stays
// in progress.
func (s *Session) Complete(ctx context.Context) (_ profile.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.session.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", s.plan.ID))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return profile.Profile{}, ErrNotStarted
	}
	if s.progress() < 1 {
		return profile.Profile{}, ErrIncomplete
	}

	updated, err := s.recorder.RecordCompletion(ctx, s.plan.Clone())
	if err != nil {
		return profile.Profile{}, err
	}

	s.state = Finished
	return updated, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make([]int, 0, len(s.checked))
	for i, done := range s.checked {
		if done {
			completed = append(completed, i)
		}
	}

	return View{
		Plan:      s.plan.Clone(),
		State:     s.state,
		Completed: completed,
		Progress:  int(math.Round(s.progress() * 100)),
	}
}

func (s *Session) progress() float64 {
	done := 0
	for _, c := range s.checked {
		if c {
			done++
		}
	}
	return float64(done) / float64(len(s.checked))
}
