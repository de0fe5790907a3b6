package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	startTime := time.Now()

	dbStatus := "healthy"
	dbError := ""
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.health.HealthCheck(ctx); err != nil {
			dbStatus = "unhealthy"
			dbError = err.Error()
			h.logger.Errorf("Database health check failed: %v", err)
		}
	}

	response := gin.H{
		"status":    "ok",
		"timestamp": startTime.Unix(),
		"service":   "bountyboard-api",
		"version":   h.version,
		"database": gin.H{
			"status": dbStatus,
			"error":  dbError,
		},
		"checks": gin.H{
			"database_connection": dbStatus == "healthy",
			"ipfs_configured":     h.content != nil,
			"faucet_configured":   h.faucet != nil,
		},
	}

	httpStatus := http.StatusOK
	if dbStatus != "healthy" {
		httpStatus = http.StatusServiceUnavailable
		response["status"] = "degraded"
	}

	h.logger.Debugf("Health check completed: status=%s, db_status=%s, duration=%v",
		response["status"], dbStatus, time.Since(startTime))

	c.JSON(httpStatus, response)
}
