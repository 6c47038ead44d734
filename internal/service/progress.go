package service

import (
	"context"
	"time"

	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
)

type ProgressRequest struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	WaterIntake     int    `json:"water_intake" validate:"gte=0"`
	ExerciseMinutes int    `json:"exercise_minutes" validate:"gte=0"`
	ScreenTimeHours int    `json:"screen_time_hours" validate:"gte=0"`
	StressLevel     int    `json:"stress_level" validate:"omitempty,gte=1,lte=10"`
	EnergyLevel     int    `json:"energy_level" validate:"omitempty,gte=1,lte=10"`
	MotivationLevel int    `json:"motivation_level" validate:"omitempty,gte=1,lte=10"`
}

func ValidateProgressRequest(req *ProgressRequest) error {
	return validate.Struct(req)
}

func ListProgress(ctx context.Context, data *storage.UserData, user *internal.User) ([]internal.DailyProgress, error) {
	return data.Progress(ctx, user.Email)
}

// UpsertProgress writes the wellness metrics for one date, replacing any
// existing row for that (user, date). Task counts are recomputed from the
// task collection, never taken from the request: DailyProgress is derived,
// not authoritative.
func UpsertProgress(ctx context.Context, data *storage.UserData, user *internal.User, req *ProgressRequest) (*internal.DailyProgress, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, internal.ValidationError("date must be YYYY-MM-DD")
	}

	tasks, err := data.Tasks(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	dayTasks := TasksForDate(tasks, date)
	completed := 0
	for _, t := range dayTasks {
		if t.IsCompleted {
			completed++
		}
	}

	row := internal.DailyProgress{
		UserID:          user.ID,
		Date:            req.Date,
		CompletedTasks:  completed,
		TotalTasks:      len(dayTasks),
		WaterIntake:     req.WaterIntake,
		ExerciseMinutes: req.ExerciseMinutes,
		ScreenTimeHours: req.ScreenTimeHours,
		StressLevel:     req.StressLevel,
		EnergyLevel:     req.EnergyLevel,
		MotivationLevel: req.MotivationLevel,
	}

	rows, err := data.Progress(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	replaced := false
	for i := range rows {
		if rows[i].Date == req.Date {
			rows[i] = row
			replaced = true
			break
		}
	}
	if !replaced {
		rows = append(rows, row)
	}
	if err := data.SaveProgress(ctx, user.Email, rows); err != nil {
		return nil, err
	}
	return &row, nil
}
