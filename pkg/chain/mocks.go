package chain

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/mock"

	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

type MockService struct {
	mock.Mock
}

var _ Service = (*MockService)(nil)

func (m *MockService) BalanceOf(ctx context.Context, token string, owner string) (*big.Int, error) {
	args := m.Called(ctx, token, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockService) Decimals(ctx context.Context, token string) (uint8, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uint8), args.Error(1)
}

func (m *MockService) Transfer(ctx context.Context, token string, to string, amount *big.Int) (string, error) {
	args := m.Called(ctx, token, to, amount)
	return args.String(0), args.Error(1)
}

func (m *MockService) GetReputation(ctx context.Context, creator string) (*types.Reputation, error) {
	args := m.Called(ctx, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Reputation), args.Error(1)
}

func (m *MockService) SubmitRating(ctx context.Context, creator string, supporter string, rating uint8, comment string) (string, error) {
	args := m.Called(ctx, creator, supporter, rating, comment)
	return args.String(0), args.Error(1)
}

func (m *MockService) UpdateRequestStatus(ctx context.Context, creator string, requestID string, completed bool) (string, error) {
	args := m.Called(ctx, creator, requestID, completed)
	return args.String(0), args.Error(1)
}

func (m *MockService) TransactionStatus(ctx context.Context, txHash string) (*types.TransactionStatusResponse, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TransactionStatusResponse), args.Error(1)
}
