package response

import (
	"net/http"

	appErrors "github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Status values carried in every envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response defines the base API payload.
type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Success writes a JSON success response.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Response{
		Status: StatusSuccess,
		Data:   data,
	})
}

// SuccessWithMessage writes a JSON success response carrying a human readable message.
func SuccessWithMessage(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, Response{
		Status:  StatusSuccess,
		Data:    data,
		Message: message,
	})
}

// Error writes a JSON error response derived from an AppError. Server side failures
// are logged with their internal cause; clients only ever see the public message.
func Error(c *gin.Context, err error) {
	c.AbortWithStatusJSON(Render(c, err))
}

// Render resolves the status code and envelope for err without writing it.
func Render(c *gin.Context, err error) (int, Response) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		fields := []zap.Field{zap.String("code", appErr.Code), zap.Error(err)}
		if c != nil && c.Request != nil {
			fields = append(fields, zap.String("path", c.Request.URL.Path), zap.String("method", c.Request.Method))
		}
		logger.Error("request failed", fields...)
	}

	return status, Response{
		Status:  StatusError,
		Data:    appErr.Data,
		Message: appErr.Message,
		Code:    appErr.Code,
	}
}
