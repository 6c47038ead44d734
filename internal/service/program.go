package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
)

type QuestionnaireRequest struct {
	SleepGoal       int      `json:"sleep_goal" validate:"required,gte=1,lte=24"`
	WaterGoal       int      `json:"water_goal" validate:"required,gte=1"`
	ExerciseGoal    int      `json:"exercise_goal" validate:"required,gte=1"`
	MindGoal        int      `json:"mind_goal" validate:"required,gte=1"`
	ScreenTimeGoal  int      `json:"screen_time_goal" validate:"required,gte=1,lte=24"`
	ShowerGoal      int      `json:"shower_goal" validate:"required,gte=1"`
	WakeUpTime      string   `json:"wake_up_time" validate:"required,datetime=15:04"`
	BedTime         string   `json:"bed_time" validate:"required,datetime=15:04"`
	StressLevel     int      `json:"stress_level" validate:"required,gte=1,lte=10"`
	EnergyLevel     int      `json:"energy_level" validate:"required,gte=1,lte=10"`
	MotivationLevel int      `json:"motivation_level" validate:"required,gte=1,lte=10"`
	ExtraTasks      []string `json:"extra_tasks" validate:"max=2,dive,required"`
}

func ValidateQuestionnaireRequest(req *QuestionnaireRequest) error {
	return validate.Struct(req)
}

func (r *QuestionnaireRequest) Questionnaire() *internal.Questionnaire {
	return &internal.Questionnaire{
		SleepGoal:       r.SleepGoal,
		WaterGoal:       r.WaterGoal,
		ExerciseGoal:    r.ExerciseGoal,
		MindGoal:        r.MindGoal,
		ScreenTimeGoal:  r.ScreenTimeGoal,
		ShowerGoal:      r.ShowerGoal,
		WakeUpTime:      r.WakeUpTime,
		BedTime:         r.BedTime,
		StressLevel:     r.StressLevel,
		EnergyLevel:     r.EnergyLevel,
		MotivationLevel: r.MotivationLevel,
		ExtraTasks:      r.ExtraTasks,
	}
}

// GenerateProgram maps the one-time questionnaire into the initial goal set
// and the day-1 progress row. Pure: no storage, no clock beyond stamping.
// The 66-day program length is a fixed constant used for denominators; no
// day-by-day variation is computed here.
func GenerateProgram(q *internal.Questionnaire, userID string) ([]internal.Goal, []internal.DailyProgress) {
	now := time.Now()
	newGoal := func(category internal.GoalCategory, title, value, target string) internal.Goal {
		return internal.Goal{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     title,
			Category:  category,
			Value:     value,
			Target:    target,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	goals := []internal.Goal{
		newGoal(internal.CategorySleep, "Sleep",
			fmt.Sprintf("%d hours", q.SleepGoal),
			fmt.Sprintf("Sleep %d hours every night", q.SleepGoal)),
		newGoal(internal.CategoryWater, "Hydration",
			fmt.Sprintf("%d glasses", q.WaterGoal),
			fmt.Sprintf("Drink %d glasses of water daily", q.WaterGoal)),
		newGoal(internal.CategoryExercise, "Exercise",
			fmt.Sprintf("%d minutes", q.ExerciseGoal),
			fmt.Sprintf("Exercise for %d minutes every day", q.ExerciseGoal)),
		newGoal(internal.CategoryMind, "Mindfulness",
			fmt.Sprintf("%d minutes", q.MindGoal),
			fmt.Sprintf("Practice mindfulness for %d minutes daily", q.MindGoal)),
		newGoal(internal.CategoryScreenTime, "Screen Time",
			fmt.Sprintf("under %d hours", q.ScreenTimeGoal),
			fmt.Sprintf("Keep screen time under %d hours a day", q.ScreenTimeGoal)),
		newGoal(internal.CategoryShower, "Shower",
			fmt.Sprintf("%d minutes", q.ShowerGoal),
			fmt.Sprintf("Finish with a %d minute cold shower", q.ShowerGoal)),
	}

	// Up to two free-form extras become custom goals.
	for _, extra := range q.ExtraTasks {
		goals = append(goals, newGoal(internal.CategoryCustom, extra, "daily", extra))
	}

	progress := []internal.DailyProgress{{
		UserID:          userID,
		Date:            DateKey(now),
		StressLevel:     q.StressLevel,
		EnergyLevel:     q.EnergyLevel,
		MotivationLevel: q.MotivationLevel,
	}}

	return goals, progress
}

// EnsureProgram generates and persists the default program if, and only if,
// the user has no goals yet. Idempotent across repeated loads.
func EnsureProgram(ctx context.Context, data *storage.UserData, user *internal.User, q *internal.Questionnaire) ([]internal.Goal, error) {
	existing, err := data.Goals(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}
	goals, progress := GenerateProgram(q, user.ID)
	if err := data.SaveGoals(ctx, user.Email, goals); err != nil {
		return nil, err
	}
	if err := data.SaveProgress(ctx, user.Email, progress); err != nil {
		return nil, err
	}
	if err := data.SetCurrentDay(ctx, user.Email, 1); err != nil {
		return nil, err
	}
	return goals, nil
}
