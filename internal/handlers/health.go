package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaalert/aquaalert/internal/monitoring"
	"github.com/aquaalert/aquaalert/pkg/response"
)

// Health reports readiness of the relational database and the document store.
func Health(health *monitoring.HealthManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := health.Evaluate(c.Request.Context())
		if !report.Success {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Status:  response.StatusError,
				Data:    report,
				Message: "Service unavailable",
				Code:    "UNAVAILABLE",
			})
			return
		}
		response.Success(c, http.StatusOK, report)
	}
}
