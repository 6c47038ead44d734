package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListUsers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := app.Users().ListUsers(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to list users")
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

func ToggleUserStatus(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := app.Users().ToggleActive(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to toggle user status")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func DeleteUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		target, err := app.Users().GetUserByID(c.Request.Context(), id)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to delete user")
			return
		}
		if err := app.Users().DeleteUser(c.Request.Context(), id); err != nil {
			HandleError(c, app.Logger(), err, "Failed to delete user")
			return
		}
		// The user's entity collections go with the account.
		if err := app.Data().ClearUser(c.Request.Context(), target.Email); err != nil {
			app.Logger().Warnf("failed to clear data for deleted user %s: %v", id, err)
		}
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}
