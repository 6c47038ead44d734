package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/response"
)

// HandleError logs and writes the envelope. AppErrors keep their own code
// and kind; anything else becomes a 500.
func HandleError(c *gin.Context, logger internal.Logger, err error, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)

	var ae *internal.AppError
	if errors.As(err, &ae) {
		c.JSON(ae.Code, response.FromError(ae))
		return
	}
	c.JSON(500, response.InternalError(msg+": "+err.Error()))
}

// HandleValidationError maps validator failures to a 400 without leaking
// struct internals beyond the field messages.
func HandleValidationError(c *gin.Context, logger internal.Logger, err error, msg string) {
	requestID := c.GetString("request_id")
	logger.Warnf("[request_id=%s] %s: %v", requestID, msg, err)
	c.JSON(400, response.BadRequest(msg+": "+err.Error()))
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Debugf("[request_id=%s] ok", requestID)
	c.JSON(200, response.Success(data, meta))
}

func HandleCreated(c *gin.Context, logger internal.Logger, data interface{}) {
	requestID := c.GetString("request_id")
	logger.Debugf("[request_id=%s] created", requestID)
	c.JSON(201, response.Success(data, nil))
}
