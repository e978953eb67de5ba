package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/shared/apperror"
	"marketplace-backend/pkg/logger"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Total int `json:"total"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError writes err using its kind for the status code. Infrastructure
// failures are logged and reported with a generic message.
func FromError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	code := apperror.CodeOf(err)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", err)
		ErrorResponse(c, status, code, "Internal server error")
		return
	}

	message := err.Error()
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
		if appErr.Err != nil {
			ErrorWithDetails(c, status, code, message, appErr.Err.Error())
			return
		}
	}
	ErrorResponse(c, status, code, message)
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}
