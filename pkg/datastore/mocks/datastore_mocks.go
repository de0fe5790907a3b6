package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bountyboard/bountyboard-backend/pkg/datastore"
)

// MockDatastoreService hands out the embedded repository mocks
type MockDatastoreService struct {
	mock.Mock
	Bounties *MockBountyRepository
	Requests *MockRequestRepository
	Events   *MockOutboxRepository
}

var _ datastore.DatastoreService = (*MockDatastoreService)(nil)

func NewMockDatastoreService() *MockDatastoreService {
	return &MockDatastoreService{
		Bounties: &MockBountyRepository{},
		Requests: &MockRequestRepository{},
		Events:   &MockOutboxRepository{},
	}
}

func (m *MockDatastoreService) Bounty() datastore.BountyRepository   { return m.Bounties }
func (m *MockDatastoreService) Request() datastore.RequestRepository { return m.Requests }
func (m *MockDatastoreService) Outbox() datastore.OutboxRepository   { return m.Events }

func (m *MockDatastoreService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDatastoreService) Close() {
	m.Called()
}
