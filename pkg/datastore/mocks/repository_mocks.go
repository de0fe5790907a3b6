package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bountyboard/bountyboard-backend/pkg/datastore"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

type MockBountyRepository struct {
	mock.Mock
}

var _ datastore.BountyRepository = (*MockBountyRepository)(nil)

func (m *MockBountyRepository) Create(ctx context.Context, bounty *types.Bounty) error {
	args := m.Called(ctx, bounty)
	return args.Error(0)
}

func (m *MockBountyRepository) GetByID(ctx context.Context, id int64) (*types.Bounty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Bounty), args.Error(1)
}

func (m *MockBountyRepository) List(ctx context.Context) ([]types.Bounty, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Bounty), args.Error(1)
}

func (m *MockBountyRepository) ListByCreator(ctx context.Context, creator string) ([]types.Bounty, error) {
	args := m.Called(ctx, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Bounty), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

var _ datastore.RequestRepository = (*MockRequestRepository)(nil)

func (m *MockRequestRepository) Create(ctx context.Context, request *types.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*types.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Request), args.Error(1)
}

func (m *MockRequestRepository) List(ctx context.Context) ([]types.Request, error) {
	args := m.Called(ctx)
	return requests(args)
}

func (m *MockRequestRepository) ListByBounty(ctx context.Context, bountyID int64) ([]types.Request, error) {
	args := m.Called(ctx, bountyID)
	return requests(args)
}

func (m *MockRequestRepository) ListBySupporter(ctx context.Context, supporter string) ([]types.Request, error) {
	args := m.Called(ctx, supporter)
	return requests(args)
}

func (m *MockRequestRepository) ListByCreator(ctx context.Context, creator string) ([]types.Request, error) {
	args := m.Called(ctx, creator)
	return requests(args)
}

func (m *MockRequestRepository) Transition(ctx context.Context, id string, from, to types.RequestStatus, fields datastore.TransitionFields) (*types.Request, error) {
	args := m.Called(ctx, id, from, to, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Request), args.Error(1)
}

func requests(args mock.Arguments) ([]types.Request, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Request), args.Error(1)
}

type MockOutboxRepository struct {
	mock.Mock
}

var _ datastore.OutboxRepository = (*MockOutboxRepository)(nil)

func (m *MockOutboxRepository) Create(ctx context.Context, event *types.ReputationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListPending(ctx context.Context, limit int, maxAttempts int) ([]types.ReputationEvent, error) {
	args := m.Called(ctx, limit, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ReputationEvent), args.Error(1)
}

func (m *MockOutboxRepository) CountPending(ctx context.Context, maxAttempts int) (int64, error) {
	args := m.Called(ctx, maxAttempts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOutboxRepository) MarkDelivered(ctx context.Context, id string, txHash string) error {
	args := m.Called(ctx, id, txHash)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}
