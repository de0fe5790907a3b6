package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

// RecoveryMiddleware turns a handler panic into a 500 and counts it
func RecoveryMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				PanicRecoveriesTotal.WithLabelValues(endpoint(c)).Inc()
				logger.Errorf("Panic recovered: %v\nStack trace: %s", err, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternal})
			}
		}()

		c.Next()
	}
}

func endpoint(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return "unmatched"
}
