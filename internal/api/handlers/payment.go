package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

// ReleasePayment records the supporter's token transfer against a completed request
func (h *Handler) ReleasePayment(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req types.ReleasePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debugf("Invalid release payment request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}
	req.RequestID = strings.TrimSpace(req.RequestID)
	req.TxHash = strings.TrimSpace(req.TxHash)
	if req.RequestID == "" || req.TxHash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrMissingFields})
		return
	}

	supporter, ok := h.caller(c, req.SupporterAddress)
	if !ok {
		return
	}

	request, err := h.lifecycle.ReleasePayment(c.Request.Context(), supporter, req.RequestID, req.TxHash)
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrReleaseFailed)
		return
	}

	logger.Infof("POST [ReleasePayment] Successful, request_id: %s, tx_hash: %s", request.ID, req.TxHash)
	c.JSON(http.StatusOK, types.ReleasePaymentResponse{
		Success:         true,
		Message:         "Payment released successfully",
		TransactionHash: req.TxHash,
		Request:         request,
	})
}
