package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/service"
)

// rescheduleNotifications rebuilds the full notification plan after a goal,
// task, or habit mutation. Notification problems never fail the mutation.
func rescheduleNotifications(c *gin.Context, app App, user *internal.User) {
	ctx := c.Request.Context()
	q, ok, err := app.Data().Questionnaire(ctx, user.Email)
	if err != nil || !ok {
		q = &internal.Questionnaire{}
	}
	goals, _ := app.Data().Goals(ctx, user.Email)
	tasks, _ := app.Data().Tasks(ctx, user.Email)
	habits, _ := app.Data().Habits(ctx, user.Email)
	if err := app.Scheduler().Setup(ctx, user, q, goals, tasks, habits); err != nil {
		app.Logger().Warnf("notification reschedule skipped for %s: %v", user.ID, err)
	}
}

func GetGoals(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		goals, err := service.ListGoals(c.Request.Context(), app.Data(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch goals")
			return
		}
		HandleSuccess(c, app.Logger(), goals, nil)
	}
}

func PostGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		var req service.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request: title and value required")
			return
		}
		if err := service.ValidateGoalRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Goal validation failed")
			return
		}

		goal, err := service.CreateGoal(c.Request.Context(), app.Data(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to save goal")
			return
		}

		rescheduleNotifications(c, app, user)
		HandleCreated(c, app.Logger(), goal)
	}
}

func PatchGoalValue(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		var req struct {
			Value string `json:"value"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request: value required")
			return
		}

		goal, err := service.UpdateGoalValue(c.Request.Context(), app.Data(), user, c.Param("id"), req.Value)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to update goal")
			return
		}
		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func ToggleGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		goal, err := service.ToggleGoal(c.Request.Context(), app.Data(), user, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to toggle goal")
			return
		}
		rescheduleNotifications(c, app, user)
		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func DeleteGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		if err := service.DeleteGoal(c.Request.Context(), app.Data(), user, c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, "Failed to delete goal")
			return
		}
		rescheduleNotifications(c, app, user)
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}
