package types

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type NonceRequest struct {
	Address string `json:"address" binding:"required,eth_addr"`
}

type NonceResponse struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

type VerifyRequest struct {
	Address   string `json:"address" binding:"required,eth_addr"`
	Signature string `json:"signature" binding:"required"`
}

type VerifyResponse struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	ExpiresAt int64  `json:"expires_at"`
}

type PinJSONRequest struct {
	Name string                 `json:"name"`
	Data map[string]interface{} `json:"data"`
}

type PinResponse struct {
	Success    bool   `json:"success"`
	CID        string `json:"cid"`
	GatewayURL string `json:"gatewayUrl"`
}

type FaucetResponse struct {
	Success bool   `json:"success"`
	TxHash  string `json:"txHash"`
}

// ChainEvent is a token event pushed by an indexer webhook
type ChainEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}
