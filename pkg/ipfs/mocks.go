package ipfs

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockContentStore struct {
	mock.Mock
}

var _ ContentStore = (*MockContentStore)(nil)

func (m *MockContentStore) PinJSON(ctx context.Context, name string, data interface{}) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

func (m *MockContentStore) PinFile(ctx context.Context, fileName string, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockContentStore) GatewayURL(cid string) string {
	args := m.Called(cid)
	return args.String(0)
}
