package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
)

type TaskRequest struct {
	Title     string   `json:"title" validate:"required"`
	Notes     string   `json:"notes"`
	Reminders []string `json:"reminders" validate:"omitempty,dive,datetime=15:04"`
}

func ValidateTaskRequest(req *TaskRequest) error {
	return validate.Struct(req)
}

func ListTasks(ctx context.Context, data *storage.UserData, user *internal.User) ([]internal.Task, error) {
	return data.Tasks(ctx, user.Email)
}

func CreateTask(ctx context.Context, data *storage.UserData, user *internal.User, req *TaskRequest) (*internal.Task, error) {
	task := internal.Task{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     req.Title,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
		Reminders: req.Reminders,
	}
	tasks, err := data.Tasks(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, task)
	if err := data.SaveTasks(ctx, user.Email, tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

func ToggleTask(ctx context.Context, data *storage.UserData, user *internal.User, taskID string) (*internal.Task, error) {
	tasks, err := data.Tasks(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].IsCompleted = !tasks[i].IsCompleted
			if err := data.SaveTasks(ctx, user.Email, tasks); err != nil {
				return nil, err
			}
			t := tasks[i]
			return &t, nil
		}
	}
	return nil, internal.NotFoundError("task not found")
}

func UpdateTask(ctx context.Context, data *storage.UserData, user *internal.User, taskID string, req *TaskRequest) (*internal.Task, error) {
	tasks, err := data.Tasks(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].Title = req.Title
			tasks[i].Notes = req.Notes
			tasks[i].Reminders = req.Reminders
			if err := data.SaveTasks(ctx, user.Email, tasks); err != nil {
				return nil, err
			}
			t := tasks[i]
			return &t, nil
		}
	}
	return nil, internal.NotFoundError("task not found")
}

func DeleteTask(ctx context.Context, data *storage.UserData, user *internal.User, taskID string) error {
	tasks, err := data.Tasks(ctx, user.Email)
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return data.SaveTasks(ctx, user.Email, tasks)
		}
	}
	return internal.NotFoundError("task not found")
}
