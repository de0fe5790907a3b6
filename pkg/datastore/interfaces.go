package datastore

import (
	"context"
	"errors"

	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

// ErrTransitionConflict means the row was not in the expected status when the update ran
var ErrTransitionConflict = errors.New("request status changed concurrently")

// Single-row reads return (nil, nil) when the row does not exist.

type BountyRepository interface {
	Create(ctx context.Context, bounty *types.Bounty) error
	GetByID(ctx context.Context, id int64) (*types.Bounty, error)
	List(ctx context.Context) ([]types.Bounty, error)
	ListByCreator(ctx context.Context, creator string) ([]types.Bounty, error)
}

// TransitionFields are written together with the new status
type TransitionFields struct {
	FulfilledCID *string
	TxHash       *string
}

type RequestRepository interface {
	Create(ctx context.Context, request *types.Request) error
	GetByID(ctx context.Context, id string) (*types.Request, error)
	List(ctx context.Context) ([]types.Request, error)
	ListByBounty(ctx context.Context, bountyID int64) ([]types.Request, error)
	ListBySupporter(ctx context.Context, supporter string) ([]types.Request, error)
	ListByCreator(ctx context.Context, creator string) ([]types.Request, error)
	// Transition moves the request from `from` to `to` only if it is still in `from`
	Transition(ctx context.Context, id string, from, to types.RequestStatus, fields TransitionFields) (*types.Request, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *types.ReputationEvent) error
	ListPending(ctx context.Context, limit int, maxAttempts int) ([]types.ReputationEvent, error)
	CountPending(ctx context.Context, maxAttempts int) (int64, error)
	MarkDelivered(ctx context.Context, id string, txHash string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}
