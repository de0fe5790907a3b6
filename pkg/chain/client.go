package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/bountyboard/bountyboard-backend/pkg/env"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

var (
	ErrNoSigner             = errors.New("no signing key configured")
	ErrNoReputationContract = errors.New("reputation contract address not configured")
	ErrTransactionReverted  = errors.New("transaction reverted")
)

// Backend is the subset of ethclient.Client used by Client
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*ethtypes.Transaction, bool, error)
}

type Config struct {
	RPCURL            string
	PrivateKey        string
	ReputationAddress string
	WaitMined         bool
	CallTimeout       time.Duration
	MineTimeout       time.Duration
}

func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("RPC URL is required")
	}
	if c.PrivateKey != "" && !env.IsValidPrivateKey(c.PrivateKey) {
		return fmt.Errorf("invalid private key")
	}
	if c.ReputationAddress != "" && !common.IsHexAddress(c.ReputationAddress) {
		return fmt.Errorf("invalid reputation contract address %q", c.ReputationAddress)
	}
	return nil
}

// Client reads and writes the ERC-20 bounty tokens and the reputation contract.
// Writes are signed with the configured key; without one every write returns ErrNoSigner.
type Client struct {
	config  Config
	backend Backend
	logger  logging.Logger

	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int

	erc20ABI          abi.ABI
	reputationABI     abi.ABI
	reputationAddress common.Address
	reputation        *bind.BoundContract
}

// Dial connects to config.RPCURL and builds a Client
func Dial(ctx context.Context, config Config, logger logging.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	backend, err := ethclient.DialContext(ctx, config.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to network: %w", err)
	}
	return NewClient(ctx, backend, config, logger)
}

func NewClient(ctx context.Context, backend Backend, config Config, logger logging.Logger) (*Client, error) {
	if config.CallTimeout == 0 {
		config.CallTimeout = 15 * time.Second
	}
	if config.MineTimeout == 0 {
		config.MineTimeout = 2 * time.Minute
	}

	erc20ABI, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 ABI: %w", err)
	}
	reputationABI, err := abi.JSON(strings.NewReader(ReputationABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse reputation ABI: %w", err)
	}

	c := &Client{
		config:        config,
		backend:       backend,
		logger:        logger,
		erc20ABI:      erc20ABI,
		reputationABI: reputationABI,
	}

	if config.ReputationAddress != "" {
		c.reputationAddress = common.HexToAddress(config.ReputationAddress)
		c.reputation = bind.NewBoundContract(c.reputationAddress, reputationABI, backend, backend, backend)
	}

	if config.PrivateKey != "" {
		key, err := crypto.HexToECDSA(env.NormalizePrivateKey(config.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		publicKeyECDSA, ok := key.Public().(*ecdsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("failed to cast public key to ECDSA")
		}

		callCtx, cancel := context.WithTimeout(ctx, config.CallTimeout)
		defer cancel()
		chainID, err := backend.ChainID(callCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain ID: %w", err)
		}

		c.key = key
		c.from = crypto.PubkeyToAddress(*publicKeyECDSA)
		c.chainID = chainID
		logger.Info("Chain signer configured", "address", c.from.Hex(), "chain_id", chainID.String())
	}

	return c, nil
}

// SignerAddress is the zero address when no key is configured
func (c *Client) SignerAddress() common.Address {
	return c.from
}

func (c *Client) Close() {
	if closer, ok := c.backend.(interface{ Close() }); ok {
		closer.Close()
	}
}

func (c *Client) callOpts(ctx context.Context) (*bind.CallOpts, context.CancelFunc) {
	callCtx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
	return &bind.CallOpts{Context: callCtx}, cancel
}

func (c *Client) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if c.key == nil {
		return nil, ErrNoSigner
	}
	auth, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction options: %w", err)
	}
	auth.Context = ctx
	return auth, nil
}

func (c *Client) token(address string) (*bind.BoundContract, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid token contract address %q", address)
	}
	return bind.NewBoundContract(common.HexToAddress(address), c.erc20ABI, c.backend, c.backend, c.backend), nil
}

// transact sends the call and, when WaitMined is set, waits for a successful receipt
func (c *Client) transact(ctx context.Context, contract *bind.BoundContract, method string, args ...interface{}) (string, error) {
	auth, err := c.transactOpts(ctx)
	if err != nil {
		return "", err
	}

	tx, err := contract.Transact(auth, method, args...)
	if err != nil {
		return "", fmt.Errorf("failed to send %s: %w", method, err)
	}

	c.logger.Info("Transaction submitted", "method", method, "tx_hash", tx.Hash().Hex(), "nonce", tx.Nonce())

	if !c.config.WaitMined {
		return tx.Hash().Hex(), nil
	}

	mineCtx, cancel := context.WithTimeout(ctx, c.config.MineTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(mineCtx, c.backend, tx)
	if err != nil {
		return tx.Hash().Hex(), fmt.Errorf("failed to wait for %s to be mined: %w", method, err)
	}
	if receipt.Status == ethtypes.ReceiptStatusFailed {
		return tx.Hash().Hex(), fmt.Errorf("%s: %w", method, ErrTransactionReverted)
	}
	return tx.Hash().Hex(), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ethereum.NotFound)
}
