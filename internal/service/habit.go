package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
)

type HabitRequest struct {
	Name          string   `json:"name" validate:"required"`
	Action        string   `json:"action"`
	Weekdays      []int    `json:"weekdays" validate:"required,min=1,dive,gte=0,lte=6"`
	ReminderTimes []string `json:"reminder_times" validate:"omitempty,dive,datetime=15:04"`
}

func ValidateHabitRequest(req *HabitRequest) error {
	return validate.Struct(req)
}

func ListHabits(ctx context.Context, data *storage.UserData, user *internal.User) ([]internal.Habit, error) {
	return data.Habits(ctx, user.Email)
}

func CreateHabit(ctx context.Context, data *storage.UserData, user *internal.User, req *HabitRequest) (*internal.Habit, error) {
	habit := internal.Habit{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		Name:          req.Name,
		Action:        req.Action,
		Weekdays:      req.Weekdays,
		StartDate:     time.Now(),
		ReminderTimes: req.ReminderTimes,
	}
	habits, err := data.Habits(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	habits = append(habits, habit)
	if err := data.SaveHabits(ctx, user.Email, habits); err != nil {
		return nil, err
	}
	return &habit, nil
}

// ToggleHabitDate flips the habit's completion for one day: present in
// CompletedDates means done.
func ToggleHabitDate(ctx context.Context, data *storage.UserData, user *internal.User, habitID, date string) (*internal.Habit, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, internal.ValidationError("date must be YYYY-MM-DD")
	}
	habits, err := data.Habits(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	for i := range habits {
		if habits[i].ID != habitID {
			continue
		}
		found := false
		for j, d := range habits[i].CompletedDates {
			if d == date {
				habits[i].CompletedDates = append(habits[i].CompletedDates[:j], habits[i].CompletedDates[j+1:]...)
				found = true
				break
			}
		}
		if !found {
			habits[i].CompletedDates = append(habits[i].CompletedDates, date)
		}
		if err := data.SaveHabits(ctx, user.Email, habits); err != nil {
			return nil, err
		}
		h := habits[i]
		return &h, nil
	}
	return nil, internal.NotFoundError("habit not found")
}

func DeleteHabit(ctx context.Context, data *storage.UserData, user *internal.User, habitID string) error {
	habits, err := data.Habits(ctx, user.Email)
	if err != nil {
		return err
	}
	for i := range habits {
		if habits[i].ID == habitID {
			habits = append(habits[:i], habits[i+1:]...)
			return data.SaveHabits(ctx, user.Email, habits)
		}
	}
	return internal.NotFoundError("habit not found")
}
