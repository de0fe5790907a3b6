// Package faucet hands out test bounty tokens from a dedicated key
package faucet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bountyboard/bountyboard-backend/pkg/chain"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/validator"
)

var ErrInvalidParams = errors.New("missing parameters")

type TokenClient interface {
	chain.TokenReader
	chain.TokenWriter
}

type Faucet struct {
	tokens TokenClient
	logger logging.Logger
}

func New(tokens TokenClient, logger logging.Logger) *Faucet {
	return &Faucet{tokens: tokens, logger: logger}
}

// Dispense transfers amount whole tokens of contract to `to`, scaled by the token's decimals
func (f *Faucet) Dispense(ctx context.Context, contract, to, amount string) (string, error) {
	contract, to, amount = strings.TrimSpace(contract), strings.TrimSpace(to), strings.TrimSpace(amount)
	if contract == "" || to == "" || amount == "" {
		return "", ErrInvalidParams
	}
	if !validator.IsValidAddress(contract) || !validator.IsValidAddress(to) {
		return "", fmt.Errorf("%w: invalid address", ErrInvalidParams)
	}

	decimals, err := f.tokens.Decimals(ctx, contract)
	if err != nil {
		return "", fmt.Errorf("failed to read token decimals: %w", err)
	}
	value, err := chain.ParseUnits(amount, decimals)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if value.Sign() <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrInvalidParams)
	}

	txHash, err := f.tokens.Transfer(ctx, contract, to, value)
	if err != nil {
		return "", err
	}
	f.logger.Info("Faucet transfer sent", "token", contract, "to", to, "amount", amount, "tx_hash", txHash)
	return txHash, nil
}
