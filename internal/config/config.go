package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bountyboard/bountyboard-backend/pkg/env"
)

type Config struct {
	devMode bool

	// API server
	apiPort            string
	requestTimeout     time.Duration
	shutdownTimeout    time.Duration
	corsAllowedOrigins []string

	// PostgreSQL
	databaseURL string

	// Redis for nonces and rate limiting, optional
	redisURL      string
	redisPassword string

	// Chain RPC and keys
	rpcURL                    string
	operatorPrivateKey        string
	faucetPrivateKey          string
	reputationContractAddress string
	waitMined                 bool

	// IPFS pinning
	ipfsProvider       string
	pinataJWT          string
	pinataAPIKey       string
	pinataSecretAPIKey string
	ipfsNodeURL        string
	ipfsGatewayURL     string

	// Wallet sign-in
	authDisabled bool
	jwtSecret    string
	jwtTTL       time.Duration
	nonceTTL     time.Duration

	// Reputation outbox and relay
	reputationOutboxEnabled bool
	relayInterval           time.Duration
	relayBatchSize          int
	relayMaxAttempts        int

	// Faucet rate limit per recipient
	faucetRateLimit  int
	faucetRateWindow time.Duration
}

var cfg Config

func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	cfg = Config{
		devMode:                   env.GetEnvBool("DEV_MODE", false),
		apiPort:                   env.GetEnvString("API_PORT", "8080"),
		requestTimeout:            env.GetEnvDuration("API_REQUEST_TIMEOUT", 30*time.Second),
		shutdownTimeout:           env.GetEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		corsAllowedOrigins:        env.GetEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		databaseURL:               env.GetEnvSecret("DATABASE_URL"),
		redisURL:                  env.GetEnvString("REDIS_URL", ""),
		redisPassword:             env.GetEnvSecret("REDIS_PASSWORD"),
		rpcURL:                    env.GetEnvString("RPC_URL", "https://sepolia.base.org"),
		operatorPrivateKey:        env.GetEnvSecret("OPERATOR_PRIVATE_KEY"),
		faucetPrivateKey:          env.GetEnvSecret("FAUCET_PRIVATE_KEY"),
		reputationContractAddress: env.GetEnvString("REPUTATION_CONTRACT_ADDRESS", ""),
		waitMined:                 env.GetEnvBool("CHAIN_WAIT_MINED", true),
		ipfsProvider:              env.GetEnvString("IPFS_PROVIDER", "pinata"),
		pinataJWT:                 env.GetEnvSecret("PINATA_JWT"),
		pinataAPIKey:              env.GetEnvSecret("PINATA_API_KEY"),
		pinataSecretAPIKey:        env.GetEnvSecret("PINATA_SECRET_API_KEY"),
		ipfsNodeURL:               env.GetEnvString("IPFS_NODE_URL", "localhost:5001"),
		ipfsGatewayURL:            env.GetEnvString("IPFS_GATEWAY_URL", "https://gateway.pinata.cloud/ipfs/"),
		authDisabled:              env.GetEnvBool("AUTH_DISABLED", false),
		jwtSecret:                 env.GetEnvSecret("JWT_SECRET"),
		jwtTTL:                    env.GetEnvDuration("JWT_TTL", time.Hour),
		nonceTTL:                  env.GetEnvDuration("AUTH_NONCE_TTL", 5*time.Minute),
		reputationOutboxEnabled:   env.GetEnvBool("REPUTATION_OUTBOX_ENABLED", false),
		relayInterval:             env.GetEnvDuration("RELAY_INTERVAL", time.Minute),
		relayBatchSize:            env.GetEnvInt("RELAY_BATCH_SIZE", 50),
		relayMaxAttempts:          env.GetEnvInt("RELAY_MAX_ATTEMPTS", 10),
		faucetRateLimit:           env.GetEnvInt("FAUCET_RATE_LIMIT", 3),
		faucetRateWindow:          env.GetEnvDuration("FAUCET_RATE_WINDOW", time.Hour),
	}

	if err := validateConfig(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !cfg.devMode {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}

func validateConfig() error {
	if env.IsEmpty(cfg.databaseURL) {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if !env.IsValidURL(cfg.rpcURL) {
		return fmt.Errorf("invalid rpc url: %s", cfg.rpcURL)
	}
	if cfg.redisURL != "" && !env.IsValidURL(cfg.redisURL) {
		return fmt.Errorf("invalid redis url: %s", cfg.redisURL)
	}
	if cfg.operatorPrivateKey != "" && !env.IsValidPrivateKey(cfg.operatorPrivateKey) {
		return fmt.Errorf("invalid operator private key")
	}
	if cfg.faucetPrivateKey != "" && !env.IsValidPrivateKey(cfg.faucetPrivateKey) {
		return fmt.Errorf("invalid faucet private key")
	}
	if cfg.reputationContractAddress != "" && !env.IsValidEthAddress(cfg.reputationContractAddress) {
		return fmt.Errorf("invalid reputation contract address: %s", cfg.reputationContractAddress)
	}
	if !cfg.authDisabled && len(cfg.jwtSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters unless AUTH_DISABLED is set")
	}
	if cfg.relayBatchSize <= 0 || cfg.relayMaxAttempts <= 0 {
		return fmt.Errorf("relay batch size and max attempts must be positive")
	}
	if cfg.relayInterval < time.Second {
		return fmt.Errorf("relay interval must be at least 1s, got %v", cfg.relayInterval)
	}
	if cfg.faucetRateLimit <= 0 || cfg.faucetRateWindow <= 0 {
		return fmt.Errorf("faucet rate limit and window must be positive")
	}
	return nil
}

func IsDevMode() bool {
	return cfg.devMode
}

func GetAPIPort() string {
	return cfg.apiPort
}

func GetRequestTimeout() time.Duration {
	return cfg.requestTimeout
}

func GetShutdownTimeout() time.Duration {
	return cfg.shutdownTimeout
}

func GetCORSAllowedOrigins() []string {
	return cfg.corsAllowedOrigins
}

func GetDatabaseURL() string {
	return cfg.databaseURL
}

func GetRedisURL() string {
	return cfg.redisURL
}

func GetRedisPassword() string {
	return cfg.redisPassword
}

func GetRPCURL() string {
	return cfg.rpcURL
}

func GetOperatorPrivateKey() string {
	return cfg.operatorPrivateKey
}

func GetFaucetPrivateKey() string {
	return cfg.faucetPrivateKey
}

func GetReputationContractAddress() string {
	return cfg.reputationContractAddress
}

func GetWaitMined() bool {
	return cfg.waitMined
}

func GetIPFSProvider() string {
	return cfg.ipfsProvider
}

func GetPinataJWT() string {
	return cfg.pinataJWT
}

func GetPinataAPIKey() string {
	return cfg.pinataAPIKey
}

func GetPinataSecretAPIKey() string {
	return cfg.pinataSecretAPIKey
}

func GetIPFSNodeURL() string {
	return cfg.ipfsNodeURL
}

func GetIPFSGatewayURL() string {
	return cfg.ipfsGatewayURL
}

// IsAuthDisabled trusts caller addresses from request bodies; local development only
func IsAuthDisabled() bool {
	return cfg.authDisabled
}

func GetJWTSecret() string {
	return cfg.jwtSecret
}

func GetJWTTTL() time.Duration {
	return cfg.jwtTTL
}

func GetNonceTTL() time.Duration {
	return cfg.nonceTTL
}

func IsReputationOutboxEnabled() bool {
	return cfg.reputationOutboxEnabled
}

func GetRelayInterval() time.Duration {
	return cfg.relayInterval
}

func GetRelayBatchSize() int {
	return cfg.relayBatchSize
}

func GetRelayMaxAttempts() int {
	return cfg.relayMaxAttempts
}

func GetFaucetRateLimit() int {
	return cfg.faucetRateLimit
}

func GetFaucetRateWindow() time.Duration {
	return cfg.faucetRateWindow
}
