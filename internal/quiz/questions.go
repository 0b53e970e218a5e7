package quiz

import "github.com/2beens/getfitpro/internal/icon"

const (
	QuestionGoal  = 1
	QuestionLevel = 2
)

type Option struct {
	Value string    `json:"value"`
	Label string    `json:"label"`
	Icon  icon.Icon `json:"icon"`
}

type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

func (q Question) HasOption(value string) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Questions returns a fresh copy of the onboarding questionnaire.
func Questions() []Question {
	return []Question{
		{
			ID:       QuestionGoal,
			Question: "What is your fitness goal?",
			Options: []Option{
				{Value: "lose_weight", Label: "Lose weight", Icon: icon.Flame},
				{Value: "build_muscle", Label: "Build muscle", Icon: icon.Dumbbell},
				{Value: "get_fit", Label: "Get fit & toned", Icon: icon.Zap},
				{Value: "improve_health", Label: "Improve overall health", Icon: icon.Heart},
			},
		},
		{
			ID:       QuestionLevel,
			Question: "What's your current fitness level?",
			Options: []Option{
				{Value: "beginner", Label: "Beginner", Icon: icon.Star},
				{Value: "intermediate", Label: "Intermediate", Icon: icon.TrendingUp},
				{Value: "advanced", Label: "Advanced", Icon: icon.Award},
			},
		},
		{
			ID:       3,
			Question: "How many days per week can you workout?",
			Options: []Option{
				{Value: "2-3", Label: "2-3 days", Icon: icon.Calendar},
				{Value: "4-5", Label: "4-5 days", Icon: icon.CalendarDays},
				{Value: "6-7", Label: "6-7 days", Icon: icon.CalendarCheck},
			},
		},
		{
			ID:       4,
			Question: "What equipment do you have access to?",
			Options: []Option{
				{Value: "none", Label: "No equipment (bodyweight)", Icon: icon.User},
				{Value: "basic", Label: "Basic (dumbbells, bands)", Icon: icon.Dumbbell},
				{Value: "full_gym", Label: "Full gym access", Icon: icon.Building},
			},
		},
		{
			ID:       5,
			Question: "How long can each workout session be?",
			Options: []Option{
				{Value: "20-30", Label: "20-30 minutes", Icon: icon.Clock},
				{Value: "30-45", Label: "30-45 minutes", Icon: icon.ClockQuarter},
				{Value: "45-60", Label: "45-60 minutes", Icon: icon.ClockHalf},
				{Value: "60+", Label: "60+ minutes", Icon: icon.ClockFull},
			},
		},
		{
			ID:       6,
			Question: "Do you have any injuries or limitations?",
			Options: []Option{
				{Value: "none", Label: "No limitations", Icon: icon.CheckCircle},
				{Value: "minor", Label: "Minor limitations", Icon: icon.AlertCircle},
				{Value: "significant", Label: "Significant limitations", Icon: icon.AlertTriangle},
			},
		},
		{
			ID:       7,
			Question: "What's your preferred workout style?",
			Options: []Option{
				{Value: "strength", Label: "Strength training", Icon: icon.Dumbbell},
				{Value: "cardio", Label: "Cardio focused", Icon: icon.Activity},
				{Value: "mixed", Label: "Mixed/Balanced", Icon: icon.Zap},
				{Value: "flexibility", Label: "Flexibility/Yoga", Icon: icon.Wind},
			},
		},
	}
}
