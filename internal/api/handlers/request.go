package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

func (h *Handler) GetRequest(c *gin.Context) {
	request, err := h.lifecycle.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrDBOperationFailed)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) ListRequestsBySupporter(c *gin.Context) {
	requests, err := h.lifecycle.ListRequestsBySupporter(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrDBOperationFailed)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) ListRequestsByCreator(c *gin.Context) {
	requests, err := h.lifecycle.ListRequestsByCreator(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrDBOperationFailed)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req types.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debugf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrInvalidRequestBody})
		return
	}
	supporter, ok := h.caller(c, req.SupporterAddress)
	if !ok {
		return
	}

	request, err := h.lifecycle.SubmitRequest(c.Request.Context(), supporter, &req)
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrDBOperationFailed)
		return
	}

	logger.Infof("POST [CreateRequest] Successful, request_id: %s, bounty_id: %d", request.ID, request.BountyID)
	c.JSON(http.StatusCreated, request)
}

func (h *Handler) GetTransferPlan(c *gin.Context) {
	plan, err := h.lifecycle.TransferPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrInternal)
		return
	}
	c.JSON(http.StatusOK, plan)
}
