package exercises

import (
	"strings"

	"github.com/2beens/getfitpro/internal/icon"
	"github.com/2beens/getfitpro/internal/plan"
)

// All matches every category or difficulty in a Filter.
const All = "All"

type Category string

const (
	Chest  Category = "Chest"
	Back   Category = "Back"
	Legs   Category = "Legs"
	Core   Category = "Core"
	Cardio Category = "Cardio"
)

var categoryIcons = map[Category]icon.Icon{
	Chest:  icon.Dumbbell,
	Back:   icon.Activity,
	Legs:   icon.TrendingUp,
	Core:   icon.Target,
	Cardio: icon.Heart,
}

func Categories() []Category {
	return []Category{Chest, Back, Legs, Core, Cardio}
}

func (c Category) Icon() icon.Icon {
	return categoryIcons[c]
}

type Exercise struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Icon        icon.Icon       `json:"icon"`
	Difficulty  plan.Difficulty `json:"difficulty"`
	Equipment   string          `json:"equipment"`
	MuscleGroup string          `json:"muscleGroup"`
	Description string          `json:"description"`
	Sets        int             `json:"sets"`
	Reps        plan.Reps       `json:"reps"`
}

func Library() []Exercise {
	lib := []Exercise{
		{
			ID:          1,
			Name:        "Push-ups",
			Category:    Chest,
			Difficulty:  plan.Beginner,
			Equipment:   "None",
			MuscleGroup: "Upper Body",
			Description: "Classic bodyweight exercise for chest, shoulders, and triceps",
			Sets:        3,
			Reps:        "10-15",
		},
		{
			ID:          2,
			Name:        "Squats",
			Category:    Legs,
			Difficulty:  plan.Beginner,
			Equipment:   "None",
			MuscleGroup: "Lower Body",
			Description: "Fundamental lower body exercise targeting quads, glutes, and core",
			Sets:        3,
			Reps:        "12-15",
		},
		{
			ID:          3,
			Name:        "Plank",
			Category:    Core,
			Difficulty:  plan.Beginner,
			Equipment:   "None",
			MuscleGroup: "Core",
			Description: "Isometric core exercise for stability and strength",
			Sets:        3,
			Reps:        "30-60s",
		},
		{
			ID:          4,
			Name:        "Dumbbell Bench Press",
			Category:    Chest,
			Difficulty:  plan.Intermediate,
			Equipment:   "Dumbbells",
			MuscleGroup: "Upper Body",
			Description: "Build chest strength and size with controlled pressing motion",
			Sets:        4,
			Reps:        "8-12",
		},
		{
			ID:          5,
			Name:        "Deadlifts",
			Category:    Back,
			Difficulty:  plan.Advanced,
			Equipment:   "Barbell",
			MuscleGroup: "Full Body",
			Description: "Compound lift targeting posterior chain and full body strength",
			Sets:        4,
			Reps:        "6-8",
		},
		{
			ID:          6,
			Name:        "Burpees",
			Category:    Cardio,
			Difficulty:  plan.Intermediate,
			Equipment:   "None",
			MuscleGroup: "Full Body",
			Description: "High-intensity full body exercise for cardio and strength",
			Sets:        3,
			Reps:        "10-15",
		},
		{
			ID:          7,
			Name:        "Pull-ups",
			Category:    Back,
			Difficulty:  plan.Intermediate,
			Equipment:   "Pull-up Bar",
			MuscleGroup: "Upper Body",
			Description: "Vertical pulling exercise for back and biceps development",
			Sets:        3,
			Reps:        "6-10",
		},
		{
			ID:          8,
			Name:        "Lunges",
			Category:    Legs,
			Difficulty:  plan.Beginner,
			Equipment:   "None",
			MuscleGroup: "Lower Body",
			Description: "Unilateral leg exercise for balance and strength",
			Sets:        3,
			Reps:        "10-12 each",
		},
	}
	for i := range lib {
		lib[i].Icon = lib[i].Category.Icon()
	}
	return lib
}

// Filter narrows the library. Empty or All category and difficulty match
// everything; Search is a case-insensitive substring of name or description.
type Filter struct {
	Search     string
	Category   string
	Difficulty string
}

func (f Filter) Matches(e Exercise) bool {
	if f.Category != "" && f.Category != All && string(e.Category) != f.Category {
		return false
	}
	if f.Difficulty != "" && f.Difficulty != All && string(e.Difficulty) != f.Difficulty {
		return false
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), search) ||
		strings.Contains(strings.ToLower(e.Description), search)
}

func Find(f Filter) []Exercise {
	found := []Exercise{}
	for _, e := range Library() {
		if f.Matches(e) {
			found = append(found, e)
		}
	}
	return found
}
