package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

type ReputationReader interface {
	GetReputation(ctx context.Context, creator string) (*types.Reputation, error)
}

type ReputationWriter interface {
	SubmitRating(ctx context.Context, creator string, supporter string, rating uint8, comment string) (string, error)
	UpdateRequestStatus(ctx context.Context, creator string, requestID string, completed bool) (string, error)
}

// GetReputation reads getReputation and getAverageRating for creator
func (c *Client) GetReputation(ctx context.Context, creator string) (rep *types.Reputation, err error) {
	done := trackChainCall("getReputation")
	defer func() { done(err) }()

	if c.reputation == nil {
		return nil, ErrNoReputationContract
	}
	if !common.IsHexAddress(creator) {
		return nil, fmt.Errorf("invalid creator address %q", creator)
	}
	creatorAddress := common.HexToAddress(creator)

	opts, cancel := c.callOpts(ctx)
	defer cancel()

	var out []interface{}
	if err = c.reputation.Call(opts, &out, "getReputation", creatorAddress); err != nil {
		return nil, fmt.Errorf("failed to read reputation: %w", err)
	}
	counters, err := bigInts(out, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reputation: %w", err)
	}

	var avg []interface{}
	if err = c.reputation.Call(opts, &avg, "getAverageRating", creatorAddress); err != nil {
		return nil, fmt.Errorf("failed to read average rating: %w", err)
	}
	average, err := bigInts(avg, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to decode average rating: %w", err)
	}

	return &types.Reputation{
		CreatorAddress:    creatorAddress.Hex(),
		Score:             types.NewBigInt(counters[0]),
		TotalRatings:      types.NewBigInt(counters[1]),
		CompletedRequests: types.NewBigInt(counters[2]),
		DisputedRequests:  types.NewBigInt(counters[3]),
		AverageRating:     types.NewBigInt(average[0]),
	}, nil
}

func bigInts(out []interface{}, n int) ([]*big.Int, error) {
	if len(out) != n {
		return nil, fmt.Errorf("expected %d outputs, got %d", n, len(out))
	}
	values := make([]*big.Int, n)
	for i, v := range out {
		value, ok := v.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("unexpected output %d of type %T", i, v)
		}
		values[i] = value
	}
	return values, nil
}

func (c *Client) SubmitRating(ctx context.Context, creator string, supporter string, rating uint8, comment string) (txHash string, err error) {
	done := trackChainCall("submitRating")
	defer func() { done(err) }()

	if c.reputation == nil {
		return "", ErrNoReputationContract
	}
	if !common.IsHexAddress(creator) || !common.IsHexAddress(supporter) {
		return "", fmt.Errorf("invalid creator or supporter address")
	}
	if rating < 1 || rating > 5 {
		return "", fmt.Errorf("rating must be between 1 and 5")
	}
	return c.transact(ctx, c.reputation, "submitRating",
		common.HexToAddress(creator), common.HexToAddress(supporter), rating, comment)
}

// UpdateRequestStatus records a completed (true) or disputed (false) request for creator
func (c *Client) UpdateRequestStatus(ctx context.Context, creator string, requestID string, completed bool) (txHash string, err error) {
	done := trackChainCall("updateRequestStatus")
	defer func() { done(err) }()

	if c.reputation == nil {
		return "", ErrNoReputationContract
	}
	if !common.IsHexAddress(creator) {
		return "", fmt.Errorf("invalid creator address %q", creator)
	}
	return c.transact(ctx, c.reputation, "updateRequestStatus", common.HexToAddress(creator), requestID, completed)
}
