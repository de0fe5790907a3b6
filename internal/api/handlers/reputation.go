package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

func (h *Handler) GetReputation(c *gin.Context) {
	resp, err := h.lifecycle.GetReputation(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrChainCallFailed)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SubmitRating(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req types.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debugf("Invalid rating body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrInvalidRequestBody})
		return
	}
	supporter, ok := h.caller(c, req.SupporterAddress)
	if !ok {
		return
	}

	resp, err := h.lifecycle.SubmitRating(c.Request.Context(), supporter, &req)
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrChainCallFailed)
		return
	}

	logger.Infof("POST [SubmitRating] Successful, creator: %s, tx_hash: %s", req.CreatorAddress, resp.TxHash)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetTransactionStatus(c *gin.Context) {
	resp, err := h.lifecycle.TransactionStatus(c.Request.Context(), c.Param("hash"))
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrChainCallFailed)
		return
	}
	c.JSON(http.StatusOK, resp)
}
