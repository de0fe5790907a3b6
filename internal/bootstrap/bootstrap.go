// Package bootstrap builds the shared clients of the api, relay and bountyctl processes from internal/config
package bootstrap

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/bountyboard/bountyboard-backend/internal/config"
	"github.com/bountyboard/bountyboard-backend/internal/relay"
	"github.com/bountyboard/bountyboard-backend/pkg/auth"
	"github.com/bountyboard/bountyboard-backend/pkg/chain"
	"github.com/bountyboard/bountyboard-backend/pkg/datastore"
	"github.com/bountyboard/bountyboard-backend/pkg/ipfs"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/redis"
)

// Logger panics on failure
func Logger(process logging.ProcessName) logging.Logger {
	logger, err := logging.NewZapLogger(logging.LoggerConfig{
		ProcessName:   process,
		IsDevelopment: config.IsDevMode(),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	return logger
}

// Datastore connects to DATABASE_URL and, when migrate is set, creates or updates the tables first
func Datastore(ctx context.Context, logger logging.Logger, migrate bool) (datastore.DatastoreService, error) {
	db, err := datastore.Connect(ctx, datastore.NewConfig(config.GetDatabaseURL()), logger)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := datastore.AutoMigrate(ctx, db); err != nil {
			return nil, err
		}
		logger.Info("Database schema migrated")
	}
	return datastore.NewServiceFromDB(db, logger), nil
}

func chainConfig(privateKey string) chain.Config {
	return chain.Config{
		RPCURL:            config.GetRPCURL(),
		PrivateKey:        privateKey,
		ReputationAddress: config.GetReputationContractAddress(),
		WaitMined:         config.GetWaitMined(),
	}
}

// OperatorChain signs reputation transactions with OPERATOR_PRIVATE_KEY; without a key it is read-only
func OperatorChain(ctx context.Context, logger logging.Logger) (*chain.Client, error) {
	return chain.Dial(ctx, chainConfig(config.GetOperatorPrivateKey()), logger.With("signer", "operator"))
}

// FaucetChain returns nil when FAUCET_PRIVATE_KEY is not set
func FaucetChain(ctx context.Context, logger logging.Logger) (*chain.Client, error) {
	if config.GetFaucetPrivateKey() == "" {
		return nil, nil
	}
	return chain.Dial(ctx, chainConfig(config.GetFaucetPrivateKey()), logger.With("signer", "faucet"))
}

// ContentStore returns nil when the selected provider has no credentials
func ContentStore(logger logging.Logger) ipfs.ContentStore {
	ipfsConfig := ipfs.NewConfig(ipfs.Provider(config.GetIPFSProvider()))
	ipfsConfig.PinataJWT = config.GetPinataJWT()
	ipfsConfig.PinataAPIKey = config.GetPinataAPIKey()
	ipfsConfig.PinataSecretAPIKey = config.GetPinataSecretAPIKey()
	ipfsConfig.NodeURL = config.GetIPFSNodeURL()
	ipfsConfig.GatewayURL = config.GetIPFSGatewayURL()

	store, err := ipfs.NewContentStore(ipfsConfig, logger)
	if err != nil {
		logger.Warnf("IPFS pinning disabled: %v", err)
		return nil
	}
	return store
}

// Redis returns nil when REDIS_URL is not set or the server cannot be reached
func Redis(logger logging.Logger) *redis.Client {
	if config.GetRedisURL() == "" {
		return nil
	}
	client, err := redis.NewClient(config.GetRedisURL(), config.GetRedisPassword(), logger)
	if err != nil {
		logger.Errorf("Failed to initialize Redis client: %v", err)
		return nil
	}
	return client
}

// Auth keeps nonces in redis when available. Without JWT_SECRET (only allowed with auth
// disabled) tokens are signed with a per-process random key.
func Auth(redisClient *redis.Client, logger logging.Logger) (*auth.Service, error) {
	var nonces auth.NonceStore
	if redisClient != nil {
		nonces = auth.NewRedisNonceStore(redisClient)
	} else {
		nonces = auth.NewMemoryNonceStore(config.GetNonceTTL())
	}

	secret := []byte(config.GetJWTSecret())
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		logger.Warn("JWT_SECRET not set, issued tokens will not survive a restart")
	}

	issuer, err := auth.NewTokenIssuer(secret, config.GetJWTTTL())
	if err != nil {
		return nil, err
	}
	return auth.NewService(nonces, issuer, config.GetNonceTTL(), logger), nil
}

func RelayConfig() relay.Config {
	relayConfig := relay.DefaultConfig()
	relayConfig.Interval = config.GetRelayInterval()
	relayConfig.BatchSize = config.GetRelayBatchSize()
	relayConfig.MaxAttempts = config.GetRelayMaxAttempts()
	return relayConfig
}
