package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	"github.com/bountyboard/bountyboard-backend/pkg/auth"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

func (h *Handler) RequestNonce(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req types.NonceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debugf("Invalid nonce request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrInvalidAddress})
		return
	}

	resp, err := h.auth.Challenge(c.Request.Context(), req.Address)
	if err != nil {
		logger.Errorf("Failed to issue nonce for %s: %v", req.Address, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": pkgerrors.ErrInternal})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) VerifySignature(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req types.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrInvalidRequestBody})
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Address, req.Signature)
	switch {
	case err == nil:
		logger.Infof("POST [VerifySignature] Successful, address: %s", resp.Address)
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, auth.ErrMalformedSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrInvalidSignature})
	case errors.Is(err, auth.ErrSignatureMismatch), errors.Is(err, auth.ErrNonceNotFound):
		logger.Warnf("Sign-in rejected for %s: %v", req.Address, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": pkgerrors.ErrInvalidSignature})
	default:
		logger.Errorf("Sign-in failed for %s: %v", req.Address, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": pkgerrors.ErrInternal})
	}
}
