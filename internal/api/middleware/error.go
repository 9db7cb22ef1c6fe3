package middleware

import (
	"log/slog"
	"net/http"

	"reserve-sim/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers from panics and answers with the standard
// error envelope. Panic messages reach the client only outside release mode.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)

		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok && gin.Mode() != gin.ReleaseMode {
			message = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
