package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

// Fulfill completes or rejects a pending request on behalf of the bounty creator
func (h *Handler) Fulfill(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req types.FulfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debugf("Invalid fulfill request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}
	req.RequestID = strings.TrimSpace(req.RequestID)
	if req.RequestID == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrMissingFields})
		return
	}
	if req.Status != types.RequestStatusCompleted && req.Status != types.RequestStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrInvalidFulfillment})
		return
	}

	creator, ok := h.caller(c, req.CreatorAddress)
	if !ok {
		return
	}

	var (
		request *types.Request
		err     error
	)
	if req.Status == types.RequestStatusCompleted {
		request, err = h.lifecycle.FulfillRequest(c.Request.Context(), creator, req.RequestID, req.CID)
	} else {
		request, err = h.lifecycle.RejectRequest(c.Request.Context(), creator, req.RequestID)
	}
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrFulfillFailed)
		return
	}

	logger.Infof("POST [Fulfill] Successful, request_id: %s, status: %s", request.ID, request.Status)
	c.JSON(http.StatusOK, types.FulfillResponse{
		Success: true,
		Request: request,
		Message: fmt.Sprintf("Request %s successfully", req.Status),
	})
}
