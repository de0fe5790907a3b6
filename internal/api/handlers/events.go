package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

// HandleChainEvent accepts Transfer and Approval notifications from an indexer webhook and logs them
func (h *Handler) HandleChainEvent(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var event types.ChainEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrEventFailed})
		return
	}

	switch event.Event {
	case "Transfer":
		logger.Info("Transfer event",
			"from", event.Data["from"], "to", event.Data["to"],
			"token_id", event.Data["tokenId"], "contract", event.Data["contractAddress"])
	case "Approval":
		logger.Info("Approval event",
			"owner", event.Data["owner"], "approved", event.Data["approved"],
			"token_id", event.Data["tokenId"], "contract", event.Data["contractAddress"])
	default:
		logger.Infof("Unknown event type: %s", event.Event)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ChainEventsHealth(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "Bounty Board Events Handler",
	})
}
