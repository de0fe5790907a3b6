package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type TokenReader interface {
	BalanceOf(ctx context.Context, token string, owner string) (*big.Int, error)
	Decimals(ctx context.Context, token string) (uint8, error)
}

type TokenWriter interface {
	Transfer(ctx context.Context, token string, to string, amount *big.Int) (string, error)
}

func (c *Client) BalanceOf(ctx context.Context, token string, owner string) (balance *big.Int, err error) {
	done := trackChainCall("balanceOf")
	defer func() { done(err) }()

	if !common.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid owner address %q", owner)
	}
	contract, err := c.token(token)
	if err != nil {
		return nil, err
	}

	opts, cancel := c.callOpts(ctx)
	defer cancel()

	var out []interface{}
	if err = contract.Call(opts, &out, "balanceOf", common.HexToAddress(owner)); err != nil {
		return nil, fmt.Errorf("failed to read token balance: %w", err)
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf output %T", out[0])
	}
	return balance, nil
}

func (c *Client) Decimals(ctx context.Context, token string) (decimals uint8, err error) {
	done := trackChainCall("decimals")
	defer func() { done(err) }()

	contract, err := c.token(token)
	if err != nil {
		return 0, err
	}

	opts, cancel := c.callOpts(ctx)
	defer cancel()

	var out []interface{}
	if err = contract.Call(opts, &out, "decimals"); err != nil {
		return 0, fmt.Errorf("failed to read token decimals: %w", err)
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected decimals output %T", out[0])
	}
	return decimals, nil
}

// Transfer sends amount base units of token from the signer to `to`
func (c *Client) Transfer(ctx context.Context, token string, to string, amount *big.Int) (txHash string, err error) {
	done := trackChainCall("transfer")
	defer func() { done(err) }()

	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("invalid recipient address %q", to)
	}
	if amount == nil || amount.Sign() <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	contract, err := c.token(token)
	if err != nil {
		return "", err
	}
	return c.transact(ctx, contract, "transfer", common.HexToAddress(to), amount)
}
