package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

type MockLifecycle struct {
	mock.Mock
}

func (m *MockLifecycle) request(args mock.Arguments) (*types.Request, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Request), args.Error(1)
}

func (m *MockLifecycle) CreateBounty(ctx context.Context, creator string, input *types.CreateBountyRequest) (*types.Bounty, error) {
	args := m.Called(ctx, creator, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Bounty), args.Error(1)
}

func (m *MockLifecycle) SubmitRequest(ctx context.Context, supporter string, input *types.CreateRequestRequest) (*types.Request, error) {
	return m.request(m.Called(ctx, supporter, input))
}

func (m *MockLifecycle) CheckEligibility(ctx context.Context, bountyID int64, supporter string) (*types.EligibilityResponse, error) {
	args := m.Called(ctx, bountyID, supporter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.EligibilityResponse), args.Error(1)
}

func (m *MockLifecycle) FulfillRequest(ctx context.Context, creator string, requestID string, cid string) (*types.Request, error) {
	return m.request(m.Called(ctx, creator, requestID, cid))
}

func (m *MockLifecycle) RejectRequest(ctx context.Context, creator string, requestID string) (*types.Request, error) {
	return m.request(m.Called(ctx, creator, requestID))
}

func (m *MockLifecycle) ReleasePayment(ctx context.Context, supporter string, requestID string, txHash string) (*types.Request, error) {
	return m.request(m.Called(ctx, supporter, requestID, txHash))
}

func (m *MockLifecycle) SubmitRating(ctx context.Context, supporter string, input *types.SubmitRatingRequest) (*types.TransactionResponse, error) {
	args := m.Called(ctx, supporter, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TransactionResponse), args.Error(1)
}

func (m *MockLifecycle) GetReputation(ctx context.Context, creator string) (*types.ReputationResponse, error) {
	args := m.Called(ctx, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ReputationResponse), args.Error(1)
}

func (m *MockLifecycle) TransferPlan(ctx context.Context, requestID string) (*types.TransferPlan, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TransferPlan), args.Error(1)
}

func (m *MockLifecycle) TransactionStatus(ctx context.Context, txHash string) (*types.TransactionStatusResponse, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TransactionStatusResponse), args.Error(1)
}

func (m *MockLifecycle) GetBounty(ctx context.Context, id int64) (*types.Bounty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Bounty), args.Error(1)
}

func (m *MockLifecycle) GetRequest(ctx context.Context, id string) (*types.Request, error) {
	return m.request(m.Called(ctx, id))
}

func (m *MockLifecycle) bounties(args mock.Arguments) ([]types.Bounty, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Bounty), args.Error(1)
}

func (m *MockLifecycle) requests(args mock.Arguments) ([]types.Request, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Request), args.Error(1)
}

func (m *MockLifecycle) ListBounties(ctx context.Context) ([]types.Bounty, error) {
	return m.bounties(m.Called(ctx))
}

func (m *MockLifecycle) ListBountiesByCreator(ctx context.Context, creator string) ([]types.Bounty, error) {
	return m.bounties(m.Called(ctx, creator))
}

func (m *MockLifecycle) ListRequestsByBounty(ctx context.Context, bountyID int64) ([]types.Request, error) {
	return m.requests(m.Called(ctx, bountyID))
}

func (m *MockLifecycle) ListRequestsByCreator(ctx context.Context, creator string) ([]types.Request, error) {
	return m.requests(m.Called(ctx, creator))
}

func (m *MockLifecycle) ListRequestsBySupporter(ctx context.Context, supporter string) ([]types.Request, error) {
	return m.requests(m.Called(ctx, supporter))
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Challenge(ctx context.Context, address string) (*types.NonceResponse, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.NonceResponse), args.Error(1)
}

func (m *MockAuthenticator) Login(ctx context.Context, address string, signature string) (*types.VerifyResponse, error) {
	args := m.Called(ctx, address, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.VerifyResponse), args.Error(1)
}

type MockDispenser struct {
	mock.Mock
}

func (m *MockDispenser) Dispense(ctx context.Context, contract, to, amount string) (string, error) {
	args := m.Called(ctx, contract, to, amount)
	return args.String(0), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
