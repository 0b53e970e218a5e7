package quiz

import (
	"context"
	"fmt"

	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
)

// Key is the store key of the completed answer set.
const Key = "quizAnswers"

// AnswerSet maps question id to the chosen option value.
type AnswerSet map[int]string

func (a AnswerSet) Clone() AnswerSet {
	c := make(AnswerSet, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

type Repo struct {
	store kvstore.Store
}

func NewRepo(store kvstore.Store) *Repo {
	return &Repo{store: store}
}

func (r *Repo) Exists(ctx context.Context) (bool, error) {
	exists, err := r.store.Exists(ctx, Key)
	if err != nil {
		return false, fmt.Errorf("quiz answers exist: %w", err)
	}
	return exists, nil
}

// Load returns the saved answers; found is false before the quiz was completed.
func (r *Repo) Load(ctx context.Context) (_ AnswerSet, found bool, err error) {
	var answers AnswerSet
	found, err = kvstore.GetJSON(ctx, r.store, Key, &answers)
	if err != nil {
		return nil, false, fmt.Errorf("load quiz answers: %w", err)
	}
	return answers, found, nil
}

// Complete stores the answer set and copies the goal and level answers into
// the profile, in one transaction.
func (r *Repo) Complete(ctx context.Context, answers AnswerSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.quiz.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.store.Update(ctx, []string{Key, profile.Key}, func(tx kvstore.Tx) error {
		if err := kvstore.PutJSON(tx, Key, answers); err != nil {
			return err
		}

		p, err := profile.Read(ctx, tx)
		if err != nil {
			return err
		}
		if goal, ok := answers[QuestionGoal]; ok {
			p.FitnessGoal = goal
		}
		if level, ok := answers[QuestionLevel]; ok {
			p.FitnessLevel = level
		}
		return profile.WriteTx(tx, p)
	})
}
