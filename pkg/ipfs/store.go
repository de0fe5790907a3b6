package ipfs

import (
	"context"
	"strings"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

// ContentStore pins JSON documents and files and returns their CID
type ContentStore interface {
	PinJSON(ctx context.Context, name string, data interface{}) (string, error)
	PinFile(ctx context.Context, fileName string, contentType string, data []byte) (string, error)
	GatewayURL(cid string) string
}

// NewContentStore returns the store selected by config.Provider
func NewContentStore(config *Config, logger logging.Logger) (ContentStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Provider {
	case ProviderNode:
		return NewNodeClient(config, logger), nil
	default:
		return NewPinataClient(config, logger), nil
	}
}

func gatewayURL(base, cid string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + cid
}
