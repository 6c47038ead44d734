package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/service"
)

func GetTasks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		tasks, err := service.ListTasks(c.Request.Context(), app.Data(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch tasks")
			return
		}
		HandleSuccess(c, app.Logger(), tasks, nil)
	}
}

func PostTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		var req service.TaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request: title required")
			return
		}
		if err := service.ValidateTaskRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Task validation failed")
			return
		}

		task, err := service.CreateTask(c.Request.Context(), app.Data(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to save task")
			return
		}

		rescheduleNotifications(c, app, user)
		HandleCreated(c, app.Logger(), task)
	}
}

func PutTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		var req service.TaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request: title required")
			return
		}
		if err := service.ValidateTaskRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Task validation failed")
			return
		}

		task, err := service.UpdateTask(c.Request.Context(), app.Data(), user, c.Param("id"), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to update task")
			return
		}

		rescheduleNotifications(c, app, user)
		HandleSuccess(c, app.Logger(), task, nil)
	}
}

func ToggleTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		task, err := service.ToggleTask(c.Request.Context(), app.Data(), user, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to toggle task")
			return
		}
		rescheduleNotifications(c, app, user)
		HandleSuccess(c, app.Logger(), task, nil)
	}
}

func DeleteTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		taskID := c.Param("id")
		if err := service.DeleteTask(c.Request.Context(), app.Data(), user, taskID); err != nil {
			HandleError(c, app.Logger(), err, "Failed to delete task")
			return
		}
		// Cancel the task's whole reminder slot range before rebuilding.
		if err := app.Scheduler().CancelTask(c.Request.Context(), taskID); err != nil {
			app.Logger().Warnf("failed to cancel reminders for task %s: %v", taskID, err)
		}
		rescheduleNotifications(c, app, user)
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}
