package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/service"
)

func GetNotes(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		notes, err := service.ListNotes(c.Request.Context(), app.Data(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch notes")
			return
		}
		HandleSuccess(c, app.Logger(), notes, nil)
	}
}

func PostNote(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)

		var req service.NoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request: content required")
			return
		}
		if err := service.ValidateNoteRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Note validation failed")
			return
		}

		note, err := service.CreateNote(c.Request.Context(), app.Data(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to save note")
			return
		}
		HandleCreated(c, app.Logger(), note)
	}
}

func ToggleNote(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		note, err := service.ToggleNote(c.Request.Context(), app.Data(), user, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to toggle note")
			return
		}
		HandleSuccess(c, app.Logger(), note, nil)
	}
}

func DeleteNote(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentRequestUser(c)
		if err := service.DeleteNote(c.Request.Context(), app.Data(), user, c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, "Failed to delete note")
			return
		}
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}
