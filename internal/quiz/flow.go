package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNoSelection   = errors.New("no option selected")
	ErrInvalidOption = errors.New("option does not belong to the current question")
	ErrFirstQuestion = errors.New("already at the first question")
	ErrFlowCompleted = errors.New("quiz already completed")
)

//go:generate mockgen -source=$GOFILE -destination=flow_mocks_test.go -package=quiz_test

type answersSaver interface {
	Complete(ctx context.Context, answers AnswerSet) error
}

// Flow walks one user through the questionnaire. Answers are held in memory
// and only persisted, all at once, when the last question is answered.
type Flow struct {
	mu        sync.Mutex
	questions []Question
	index     int
	answers   AnswerSet
	candidate string
	completed bool
	saver     answersSaver
}

type State struct {
	Question  Question `json:"question"`
	Index     int      `json:"index"`
	Total     int      `json:"total"`
	Selected  string   `json:"selected,omitempty"`
	Progress  float64  `json:"progress"`
	Completed bool     `json:"completed"`
}

func NewFlow(saver answersSaver) *Flow {
	return &Flow{
		questions: Questions(),
		answers:   AnswerSet{},
		saver:     saver,
	}
}

func (f *Flow) CurrentQuestion() Question {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.questions[f.index]
}

// SelectOption records a candidate answer for the current question. It does
// not advance and does not persist.
func (f *Flow) SelectOption(value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.completed {
		return ErrFlowCompleted
	}
	q := f.questions[f.index]
	if !q.HasOption(value) {
		return fmt.Errorf("%w: question %d, value [%s]", ErrInvalidOption, q.ID, value)
	}
	f.candidate = value
	return nil
}

// Next commits the candidate. On the last question the whole answer set is
// saved and done is true; a failed save leaves the flow untouched.
func (f *Flow) Next(ctx context.Context) (done bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.completed {
		return false, ErrFlowCompleted
	}
	if f.candidate == "" {
		return false, ErrNoSelection
	}

	q := f.questions[f.index]
	if f.index == len(f.questions)-1 {
		final := f.answers.Clone()
		final[q.ID] = f.candidate
		if err := f.saver.Complete(ctx, final); err != nil {
			return false, fmt.Errorf("save answers: %w", err)
		}
		f.answers = final
		f.completed = true
		return true, nil
	}

	f.answers[q.ID] = f.candidate
	f.index++
	f.candidate = f.answers[f.questions[f.index].ID]
	return false, nil
}

// Back returns to the previous question, restoring its recorded answer as the
// candidate. An unconfirmed selection on the current question is dropped.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.completed {
		return ErrFlowCompleted
	}
	if f.index == 0 {
		return ErrFirstQuestion
	}
	f.index--
	f.candidate = f.answers[f.questions[f.index].ID]
	return nil
}

// Progress is (index+1)/N, always in (0, 1].
func (f *Flow) Progress() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.progress()
}

func (f *Flow) progress() float64 {
	return float64(f.index+1) / float64(len(f.questions))
}

func (f *Flow) Answers() AnswerSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answers.Clone()
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Question:  f.questions[f.index],
		Index:     f.index,
		Total:     len(f.questions),
		Selected:  f.candidate,
		Progress:  f.progress() * 100,
		Completed: f.completed,
	}
}
