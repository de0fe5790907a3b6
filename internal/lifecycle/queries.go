package lifecycle

import (
	"context"
	"fmt"

	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

func (c *Coordinator) GetBounty(ctx context.Context, id int64) (*types.Bounty, error) {
	bounty, err := c.store.Bounty().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bounty == nil {
		return nil, NewError(ErrNotFound, pkgerrors.ErrBountyNotFound)
	}
	return bounty, nil
}

// GetRequest returns the request joined with its bounty
func (c *Coordinator) GetRequest(ctx context.Context, id string) (*types.Request, error) {
	request, err := c.store.Request().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, NewError(ErrNotFound, pkgerrors.ErrRequestNotFound)
	}
	if request.Bounty == nil {
		bounty, err := c.store.Bounty().GetByID(ctx, request.BountyID)
		if err != nil {
			return nil, err
		}
		if bounty == nil {
			return nil, fmt.Errorf("bounty %d of request %s is missing", request.BountyID, id)
		}
		request.Bounty = bounty
	}
	return request, nil
}

func (c *Coordinator) ListBounties(ctx context.Context) ([]types.Bounty, error) {
	bounties, err := c.store.Bounty().List(ctx)
	if err != nil {
		return nil, err
	}
	return nonNilBounties(bounties), nil
}

func (c *Coordinator) ListBountiesByCreator(ctx context.Context, creator string) ([]types.Bounty, error) {
	address, err := normalizeAddress(creator)
	if err != nil {
		return nil, err
	}
	bounties, err := c.store.Bounty().ListByCreator(ctx, address)
	if err != nil {
		return nil, err
	}
	return nonNilBounties(bounties), nil
}

func (c *Coordinator) ListRequestsByBounty(ctx context.Context, bountyID int64) ([]types.Request, error) {
	requests, err := c.store.Request().ListByBounty(ctx, bountyID)
	if err != nil {
		return nil, err
	}
	return nonNilRequests(requests), nil
}

func (c *Coordinator) ListRequestsByCreator(ctx context.Context, creator string) ([]types.Request, error) {
	address, err := normalizeAddress(creator)
	if err != nil {
		return nil, err
	}
	requests, err := c.store.Request().ListByCreator(ctx, address)
	if err != nil {
		return nil, err
	}
	return nonNilRequests(requests), nil
}

func (c *Coordinator) ListRequestsBySupporter(ctx context.Context, supporter string) ([]types.Request, error) {
	address, err := normalizeAddress(supporter)
	if err != nil {
		return nil, err
	}
	requests, err := c.store.Request().ListBySupporter(ctx, address)
	if err != nil {
		return nil, err
	}
	return nonNilRequests(requests), nil
}

// list endpoints answer [] rather than null
func nonNilBounties(bounties []types.Bounty) []types.Bounty {
	if bounties == nil {
		return []types.Bounty{}
	}
	return bounties
}

func nonNilRequests(requests []types.Request) []types.Request {
	if requests == nil {
		return []types.Request{}
	}
	return requests
}
