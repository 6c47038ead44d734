package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/service"
)

func GetProgress(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		progress, err := service.ListProgress(c.Request.Context(), app.Data(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch progress")
			return
		}
		HandleSuccess(c, app.Logger(), progress, nil)
	}
}

func PostProgress(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		var req service.ProgressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request: date required")
			return
		}
		if err := service.ValidateProgressRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Progress validation failed")
			return
		}

		entry, err := service.UpsertProgress(c.Request.Context(), app.Data(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to save progress")
			return
		}
		HandleSuccess(c, app.Logger(), entry, nil)
	}
}
