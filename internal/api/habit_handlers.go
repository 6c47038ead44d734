package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/service"
)

func GetHabits(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		habits, err := service.ListHabits(c.Request.Context(), app.Data(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch habits")
			return
		}
		HandleSuccess(c, app.Logger(), habits, nil)
	}
}

func PostHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		var req service.HabitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request: name and weekdays required")
			return
		}
		if err := service.ValidateHabitRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Habit validation failed")
			return
		}

		habit, err := service.CreateHabit(c.Request.Context(), app.Data(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to save habit")
			return
		}

		rescheduleNotifications(c, app, user)
		HandleCreated(c, app.Logger(), habit)
	}
}

func ToggleHabitDate(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		var req struct {
			Date string `json:"date"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request: date required")
			return
		}

		habit, err := service.ToggleHabitDate(c.Request.Context(), app.Data(), user, c.Param("id"), req.Date)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to toggle habit")
			return
		}
		HandleSuccess(c, app.Logger(), habit, nil)
	}
}

func DeleteHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		if err := service.DeleteHabit(c.Request.Context(), app.Data(), user, c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, "Failed to delete habit")
			return
		}
		rescheduleNotifications(c, app, user)
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}
