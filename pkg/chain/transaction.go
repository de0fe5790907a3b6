package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/bountyboard/bountyboard-backend/pkg/env"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

type TransactionReader interface {
	TransactionStatus(ctx context.Context, txHash string) (*types.TransactionStatusResponse, error)
}

// TransactionStatus reports pending until a receipt exists, then confirmed or failed
func (c *Client) TransactionStatus(ctx context.Context, txHash string) (status *types.TransactionStatusResponse, err error) {
	done := trackChainCall("transactionReceipt")
	defer func() { done(err) }()

	if !env.IsValidTxHash(txHash) {
		return nil, fmt.Errorf("invalid transaction hash %q", txHash)
	}
	hash := common.HexToHash(txHash)

	callCtx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
	defer cancel()

	receipt, err := c.backend.TransactionReceipt(callCtx, hash)
	if err != nil {
		if isNotFound(err) {
			return &types.TransactionStatusResponse{TxHash: hash.Hex(), Status: types.TransactionPending}, nil
		}
		return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
	}

	status = &types.TransactionStatusResponse{
		TxHash:      hash.Hex(),
		Status:      types.TransactionConfirmed,
		BlockNumber: types.NewBigInt(receipt.BlockNumber),
	}
	if receipt.Status == ethtypes.ReceiptStatusFailed {
		status.Status = types.TransactionFailed
	}
	return status, nil
}
