package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	"github.com/bountyboard/bountyboard-backend/internal/faucet"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

func (h *Handler) Faucet(c *gin.Context) {
	logger := middleware.GetLogger(c)
	if h.faucet == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": pkgerrors.ErrFaucetNotAvailable})
		return
	}

	contract, to, amount := c.Query("contract"), c.Query("to"), c.Query("amount")
	txHash, err := h.faucet.Dispense(c.Request.Context(), contract, to, amount)
	if errors.Is(err, faucet.ErrInvalidParams) {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrMissingParameters})
		return
	}
	if err != nil {
		logger.Errorf("Faucet transfer to %s failed: %v", to, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("%s: %v", pkgerrors.ErrFaucetFailed, err)})
		return
	}

	logger.Infof("GET [Faucet] Successful, to: %s, amount: %s, tx_hash: %s", to, amount, txHash)
	c.JSON(http.StatusOK, types.FaucetResponse{Success: true, TxHash: txHash})
}
