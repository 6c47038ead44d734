package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/service"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Text        string         `json:"text"`
	CreatedTask *internal.Task `json:"created_task,omitempty"`
}

// PostChat forwards the user message to the assistant endpoint. When the
// reply carries a create_task command the task is created on the user's
// behalf and returned alongside the text.
func PostChat(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.Chat() == nil {
			HandleError(c, app.Logger(), internal.NotFoundError("chat is not configured"), "Chat unavailable")
			return
		}
		user := auth.CurrentRequestUser(c)

		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, app.Logger(), err, "Invalid request")
			return
		}
		if req.Message == "" {
			HandleError(c, app.Logger(), internal.ValidationError("message is required"), "Invalid request")
			return
		}

		reply, err := app.Chat().Send(c.Request.Context(), req.Message)
		if err != nil {
			HandleError(c, app.Logger(), err, "Chat request failed")
			return
		}

		out := chatResponse{Text: reply.Text}
		if reply.Command != nil {
			task, err := service.CreateTask(c.Request.Context(), app.Data(), user, &service.TaskRequest{Title: reply.Command.Title})
			if err != nil {
				HandleError(c, app.Logger(), err, "Failed to create task from chat")
				return
			}
			out.CreatedTask = task
			rescheduleNotifications(c, app, user)
		}

		HandleSuccess(c, app.Logger(), out, nil)
	}
}
