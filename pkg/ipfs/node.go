package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

// NodeClient pins content on a self-hosted IPFS node through its HTTP API
type NodeClient struct {
	config *Config
	logger logging.Logger
	shell  *shell.Shell
}

var _ ContentStore = (*NodeClient)(nil)

func NewNodeClient(config *Config, logger logging.Logger) *NodeClient {
	sh := shell.NewShell(config.NodeURL)
	sh.SetTimeout(config.Timeout)
	return &NodeClient{
		config: config,
		logger: logger,
		shell:  sh,
	}
}

func (n *NodeClient) PinJSON(ctx context.Context, name string, data interface{}) (string, error) {
	if data == nil {
		return "", fmt.Errorf("data is required")
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return n.add(ctx, name, payload)
}

func (n *NodeClient) PinFile(ctx context.Context, fileName string, contentType string, data []byte) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("data cannot be empty")
	}
	return n.add(ctx, fileName, data)
}

func (n *NodeClient) add(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cid, err := n.shell.Add(bytes.NewReader(data), shell.Pin(true))
	if err != nil {
		return "", fmt.Errorf("failed to add %s to IPFS node: %w", name, err)
	}
	n.logger.Debug("Added content to IPFS node", "name", name, "cid", cid)
	return cid, nil
}

func (n *NodeClient) GatewayURL(cid string) string {
	return gatewayURL(n.config.GatewayURL, cid)
}
