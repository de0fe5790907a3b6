package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

func bountyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrInvalidBountyID})
		return 0, false
	}
	return id, true
}

func (h *Handler) ListBounties(c *gin.Context) {
	bounties, err := h.lifecycle.ListBounties(c.Request.Context())
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrDBOperationFailed)
		return
	}
	c.JSON(http.StatusOK, bounties)
}

func (h *Handler) GetBounty(c *gin.Context) {
	id, ok := bountyID(c)
	if !ok {
		return
	}
	bounty, err := h.lifecycle.GetBounty(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrDBOperationFailed)
		return
	}
	c.JSON(http.StatusOK, bounty)
}

func (h *Handler) ListBountiesByCreator(c *gin.Context) {
	bounties, err := h.lifecycle.ListBountiesByCreator(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrDBOperationFailed)
		return
	}
	c.JSON(http.StatusOK, bounties)
}

func (h *Handler) CreateBounty(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req types.CreateBountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debugf("Invalid bounty body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrInvalidRequestBody})
		return
	}
	creator, ok := h.caller(c, req.CreatorAddress)
	if !ok {
		return
	}

	bounty, err := h.lifecycle.CreateBounty(c.Request.Context(), creator, &req)
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrDBOperationFailed)
		return
	}

	logger.Infof("POST [CreateBounty] Successful, bounty_id: %d, creator: %s", bounty.ID, bounty.CreatorAddress)
	c.JSON(http.StatusCreated, bounty)
}

func (h *Handler) ListBountyRequests(c *gin.Context) {
	id, ok := bountyID(c)
	if !ok {
		return
	}
	requests, err := h.lifecycle.ListRequestsByBounty(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrDBOperationFailed)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) CheckEligibility(c *gin.Context) {
	id, ok := bountyID(c)
	if !ok {
		return
	}
	resp, err := h.lifecycle.CheckEligibility(c.Request.Context(), id, c.Param("address"))
	if err != nil {
		h.respondError(c, err, pkgerrors.ErrChainCallFailed)
		return
	}
	c.JSON(http.StatusOK, resp)
}
