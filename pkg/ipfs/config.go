package ipfs

import (
	"fmt"
	"strings"
	"time"
)

type Provider string

const (
	ProviderPinata Provider = "pinata"
	ProviderNode   Provider = "node"
)

const (
	DefaultPinataBaseURL = "https://api.pinata.cloud"
	DefaultGatewayURL    = "https://gateway.pinata.cloud/ipfs/"
	DefaultNodeURL       = "localhost:5001"
)

type Config struct {
	Provider Provider

	PinataBaseURL      string
	PinataJWT          string
	PinataAPIKey       string
	PinataSecretAPIKey string

	NodeURL    string
	GatewayURL string

	Timeout    time.Duration
	RetryCount int
}

func NewConfig(provider Provider) *Config {
	return &Config{
		Provider:      provider,
		PinataBaseURL: DefaultPinataBaseURL,
		NodeURL:       DefaultNodeURL,
		GatewayURL:    DefaultGatewayURL,
		Timeout:       30 * time.Second,
		RetryCount:    2,
	}
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderPinata:
		if strings.TrimSpace(c.PinataJWT) == "" &&
			(strings.TrimSpace(c.PinataAPIKey) == "" || strings.TrimSpace(c.PinataSecretAPIKey) == "") {
			return fmt.Errorf("pinata API keys not configured")
		}
		if strings.TrimSpace(c.PinataBaseURL) == "" {
			return fmt.Errorf("PinataBaseURL is required")
		}
	case ProviderNode:
		if strings.TrimSpace(c.NodeURL) == "" {
			return fmt.Errorf("NodeURL is required")
		}
	default:
		return fmt.Errorf("unknown IPFS provider %q", c.Provider)
	}
	if strings.TrimSpace(c.GatewayURL) == "" {
		return fmt.Errorf("GatewayURL is required")
	}
	return nil
}
