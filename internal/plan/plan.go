package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Reps is a repetition count ("12") or a duration ("60s").
// JSON numbers are accepted and stored as their decimal form.
type Reps string

func (r *Reps) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Reps(s)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("reps must be a string or an integer: %s", data)
	}
	*r = Reps(strconv.Itoa(n))
	return nil
}

type ExerciseEntry struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps Reps   `json:"reps"`
}

type Plan struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Duration     string          `json:"duration"`
	Difficulty   Difficulty      `json:"difficulty"`
	Type         string          `json:"type"`
	Exercises    []ExerciseEntry `json:"exercises"`
	Completed    bool            `json:"completed"`
	ScheduledFor string          `json:"scheduledFor,omitempty"`
}

var (
	ErrNoExercises = errors.New("plan has no exercises")
	ErrNoName      = errors.New("plan name is empty")
)

// Clone returns a deep copy, the exercise slice included.
func (p Plan) Clone() Plan {
	c := p
	c.Exercises = append([]ExerciseEntry(nil), p.Exercises...)
	return c
}

func (p Plan) Validate() error {
	if p.Name == "" {
		return ErrNoName
	}
	if len(p.Exercises) == 0 {
		return ErrNoExercises
	}
	if p.Difficulty != "" && !p.Difficulty.IsValid() {
		return fmt.Errorf("invalid difficulty: %s", p.Difficulty)
	}
	return nil
}
