package workoutlog

import (
	"time"

	"github.com/2beens/getfitpro/internal/plan"
)

// Key is the store key holding the whole log as one JSON array.
const Key = "workoutLog"

// Entry is an immutable snapshot of a finished plan.
type Entry struct {
	plan.Plan
	CompletedAt time.Time `json:"completedAt"`
}

func NewEntry(p plan.Plan, completedAt time.Time) Entry {
	snapshot := p.Clone()
	snapshot.Completed = true
	return Entry{
		Plan:        snapshot,
		CompletedAt: completedAt.UTC(),
	}
}
