package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/logger"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// Recovery converts panics into a 500 response and logs the error.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithModule("http").Error("panic",
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", r),
				)
				response.Error(c, errors.ErrInternalServer.WithInternal(fmt.Errorf("panic: %v", r)))
			}
		}()
		c.Next()
	}
}

// NotFoundHandler returns a JSON 404 response for unknown routes.
func NotFoundHandler(c *gin.Context) {
	response.Error(c, errors.New(errors.CodeNotFound, fmt.Sprintf("Route %s not found", c.Request.URL.Path), http.StatusNotFound))
}

// MethodNotAllowedHandler answers 405 for known paths hit with the wrong method.
func MethodNotAllowedHandler(c *gin.Context) {
	response.Error(c, errors.ErrMethodNotAllowed)
}
