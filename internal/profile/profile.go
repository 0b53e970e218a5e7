package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Key is the store key of the single user profile record.
const Key = "userProfile"

var ErrInvalidPatch = errors.New("invalid profile update")

var (
	FitnessGoals  = []string{"lose_weight", "build_muscle", "get_fit", "improve_health"}
	FitnessLevels = []string{"beginner", "intermediate", "advanced"}
)

type Profile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	JoinDate      string `json:"joinDate"`
	FitnessGoal   string `json:"fitnessGoal"`
	FitnessLevel  string `json:"fitnessLevel"`
	TotalWorkouts int    `json:"totalWorkouts"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
}

// Default is the profile served until the first write.
func Default() Profile {
	return Profile{
		ID:            "user123",
		Name:          "John Doe",
		Email:         "john@example.com",
		JoinDate:      "2025-01-01",
		FitnessGoal:   "build_muscle",
		FitnessLevel:  "intermediate",
		TotalWorkouts: 47,
		CurrentStreak: 5,
		LongestStreak: 12,
	}
}

// Patch holds the user editable fields; nil fields are left untouched.
type Patch struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	FitnessGoal  *string `json:"fitnessGoal,omitempty"`
	FitnessLevel *string `json:"fitnessLevel,omitempty"`
}

func (p Profile) Apply(patch Patch) (Profile, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return p, fmt.Errorf("%w: name is empty", ErrInvalidPatch)
		}
		p.Name = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if !strings.Contains(email, "@") {
			return p, fmt.Errorf("%w: email [%s]", ErrInvalidPatch, email)
		}
		p.Email = email
	}
	if patch.FitnessGoal != nil {
		if !IsValidGoal(*patch.FitnessGoal) {
			return p, fmt.Errorf("%w: fitness goal [%s]", ErrInvalidPatch, *patch.FitnessGoal)
		}
		p.FitnessGoal = *patch.FitnessGoal
	}
	if patch.FitnessLevel != nil {
		if !IsValidLevel(*patch.FitnessLevel) {
			return p, fmt.Errorf("%w: fitness level [%s]", ErrInvalidPatch, *patch.FitnessLevel)
		}
		p.FitnessLevel = *patch.FitnessLevel
	}
	return p, nil
}

func IsValidGoal(goal string) bool {
	return contains(FitnessGoals, goal)
}

func IsValidLevel(level string) bool {
	return contains(FitnessLevels, level)
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
