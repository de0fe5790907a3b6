package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

const (
	TraceIDHeader = "X-Trace-ID"
	TraceIDKey    = "trace_id"
	LoggerKey     = "logger"
)

// TraceMiddleware attaches a trace ID and a traced logger to every request.
// A missing X-Trace-ID header gets a fresh uuid.
func TraceMiddleware(baseLogger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(TraceIDKey, traceID)
		c.Set(LoggerKey, baseLogger.WithTraceID(traceID))
		c.Header(TraceIDHeader, traceID)

		c.Next()
	}
}

// GetLogger retrieves the traced logger from the Gin context
func GetLogger(c *gin.Context) logging.Logger {
	value, exists := c.Get(LoggerKey)
	if !exists {
		return logging.NewNoOpLogger()
	}
	logger, ok := value.(logging.Logger)
	if !ok {
		return logging.NewNoOpLogger()
	}
	return logger
}

func GetTraceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}
