package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
)

type GoalRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Value       string `json:"value" validate:"required"`
	Target      string `json:"target"`
}

func ValidateGoalRequest(req *GoalRequest) error {
	return validate.Struct(req)
}

func ListGoals(ctx context.Context, data *storage.UserData, user *internal.User) ([]internal.Goal, error) {
	return data.Goals(ctx, user.Email)
}

// CreateGoal adds a custom goal. The six default-category goals only ever
// come from the program generator.
func CreateGoal(ctx context.Context, data *storage.UserData, user *internal.User, req *GoalRequest) (*internal.Goal, error) {
	now := time.Now()
	goal := internal.Goal{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    internal.CategoryCustom,
		Value:       req.Value,
		Target:      req.Target,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	goals, err := data.Goals(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	goals = append(goals, goal)
	if err := data.SaveGoals(ctx, user.Email, goals); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoalValue edits the display value of any goal, default or custom.
func UpdateGoalValue(ctx context.Context, data *storage.UserData, user *internal.User, goalID, value string) (*internal.Goal, error) {
	if value == "" {
		return nil, internal.ValidationError("goal value is required")
	}
	goals, err := data.Goals(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID == goalID {
			goals[i].Value = value
			goals[i].UpdatedAt = time.Now()
			if err := data.SaveGoals(ctx, user.Email, goals); err != nil {
				return nil, err
			}
			g := goals[i]
			return &g, nil
		}
	}
	return nil, internal.NotFoundError("goal not found")
}

func ToggleGoal(ctx context.Context, data *storage.UserData, user *internal.User, goalID string) (*internal.Goal, error) {
	goals, err := data.Goals(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID == goalID {
			goals[i].IsActive = !goals[i].IsActive
			goals[i].UpdatedAt = time.Now()
			if err := data.SaveGoals(ctx, user.Email, goals); err != nil {
				return nil, err
			}
			g := goals[i]
			return &g, nil
		}
	}
	return nil, internal.NotFoundError("goal not found")
}

// DeleteGoal removes a custom goal. Default-category goals are not
// deletable, only value-editable.
func DeleteGoal(ctx context.Context, data *storage.UserData, user *internal.User, goalID string) error {
	goals, err := data.Goals(ctx, user.Email)
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].ID == goalID {
			if goals[i].Category != internal.CategoryCustom {
				return internal.ValidationError("default goals cannot be deleted")
			}
			goals = append(goals[:i], goals[i+1:]...)
			return data.SaveGoals(ctx, user.Email, goals)
		}
	}
	return internal.NotFoundError("goal not found")
}
