package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

type pinataPinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

type pinataMetadata struct {
	Name      string            `json:"name,omitempty"`
	Keyvalues map[string]string `json:"keyvalues,omitempty"`
}

type PinataClient struct {
	config *Config
	logger logging.Logger
	client *resty.Client
}

var _ ContentStore = (*PinataClient)(nil)

func NewPinataClient(config *Config, logger logging.Logger) *PinataClient {
	c := &PinataClient{
		config: config,
		logger: logger,
	}

	c.client = resty.New().
		SetBaseURL(strings.TrimSuffix(config.PinataBaseURL, "/")).
		SetTimeout(config.Timeout).
		SetRetryCount(config.RetryCount).
		AddRetryCondition(c.shouldRetry).
		OnBeforeRequest(c.authenticate).
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			if resp.IsSuccess() {
				return nil
			}
			c.logger.Debug("Pinata request failed",
				"status", resp.StatusCode(),
				"url", resp.Request.URL,
				"body", string(resp.Body()))
			return fmt.Errorf("unexpected pinata status: %s", resp.Status())
		})

	return c
}

func (c *PinataClient) authenticate(_ *resty.Client, req *resty.Request) error {
	if c.config.PinataJWT != "" {
		req.SetAuthToken(c.config.PinataJWT)
		return nil
	}
	req.SetHeader("pinata_api_key", c.config.PinataAPIKey)
	req.SetHeader("pinata_secret_api_key", c.config.PinataSecretAPIKey)
	return nil
}

// transport errors, rate limiting and server side failures are retried.
// err also carries the non-2xx error raised by OnAfterResponse, so the status decides.
func (c *PinataClient) shouldRetry(resp *resty.Response, err error) bool {
	if resp == nil || resp.StatusCode() == 0 {
		return err != nil
	}
	return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500
}

func (c *PinataClient) PinJSON(ctx context.Context, name string, data interface{}) (string, error) {
	if data == nil {
		return "", fmt.Errorf("data is required")
	}

	body := map[string]interface{}{
		"pinataContent": data,
	}
	if name != "" {
		body["pinataMetadata"] = pinataMetadata{Name: name}
	}

	var result pinataPinResponse
	_, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post("/pinning/pinJSONToIPFS")
	if err != nil {
		return "", fmt.Errorf("failed to pin JSON to IPFS: %w", err)
	}
	if result.IpfsHash == "" {
		return "", fmt.Errorf("pinata response did not contain a CID")
	}

	c.logger.Debug("Pinned JSON", "name", name, "cid", result.IpfsHash)
	return result.IpfsHash, nil
}

func (c *PinataClient) PinFile(ctx context.Context, fileName string, contentType string, data []byte) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("data cannot be empty")
	}

	metadata, err := json.Marshal(pinataMetadata{
		Name: fileName,
		Keyvalues: map[string]string{
			"originalName": fileName,
			"type":         contentType,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode pinata metadata: %w", err)
	}

	var result pinataPinResponse
	_, err = c.client.R().
		SetContext(ctx).
		SetMultipartField("file", fileName, contentType, bytes.NewReader(data)).
		SetMultipartFormData(map[string]string{"pinataMetadata": string(metadata)}).
		SetResult(&result).
		Post("/pinning/pinFileToIPFS")
	if err != nil {
		return "", fmt.Errorf("failed to pin file to IPFS: %w", err)
	}
	if result.IpfsHash == "" {
		return "", fmt.Errorf("pinata response did not contain a CID")
	}

	c.logger.Debug("Pinned file", "file", fileName, "size", len(data), "cid", result.IpfsHash)
	return result.IpfsHash, nil
}

func (c *PinataClient) GatewayURL(cid string) string {
	return gatewayURL(c.config.GatewayURL, cid)
}
