package coach

import "github.com/2beens/getfitpro/internal/plan"

type userRequest struct {
	UserID string `json:"user_id"`
}

type Recommendation struct {
	Name       string               `json:"name"`
	Difficulty string               `json:"difficulty"`
	Duration   string               `json:"duration"`
	Rationale  string               `json:"rationale"`
	Exercises  []plan.ExerciseEntry `json:"exercises"`
}

type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

type RestDaySuggestion struct {
	ShouldRest      bool     `json:"should_rest"`
	Reasoning       string   `json:"reasoning"`
	RecoveryTips    []string `json:"recovery_tips,omitempty"`
	LightActivities []string `json:"light_activities,omitempty"`
}

type FormCheckRequest struct {
	ExerciseName string `json:"exercise_name"`
	ImageBase64  string `json:"image_base64"`
}

type FormAnalysis struct {
	Score          float64  `json:"score"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	SafetyConcerns []string `json:"safety_concerns"`
	Tips           []string `json:"tips"`
}

type createWorkoutRequest struct {
	Name         string               `json:"name"`
	Duration     string               `json:"duration"`
	Difficulty   plan.Difficulty      `json:"difficulty"`
	Type         string               `json:"type"`
	Exercises    []plan.ExerciseEntry `json:"exercises"`
	ScheduledFor string               `json:"scheduledFor,omitempty"`
}
