package chain

import (
	"bytes"
	"context"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

const (
	tokenAddress      = "0x1111111111111111111111111111111111111111"
	reputationAddress = "0x2222222222222222222222222222222222222222"
	holderAddress     = "0x3333333333333333333333333333333333333333"
)

// fakeBackend answers contract calls from canned outputs keyed by method selector
type fakeBackend struct {
	mu            sync.Mutex
	chainID       *big.Int
	outputs       map[string][]byte
	sent          []*ethtypes.Transaction
	receipts      map[common.Hash]*ethtypes.Receipt
	receiptStatus *uint64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chainID:  big.NewInt(84532),
		outputs:  map[string][]byte{},
		receipts: map[common.Hash]*ethtypes.Receipt{},
	}
}

func (f *fakeBackend) setOutput(t *testing.T, parsed abi.ABI, method string, values ...interface{}) {
	packed, err := parsed.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	f.outputs[hexutil.Encode(parsed.Methods[method].ID)] = packed
}

func (f *fakeBackend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if len(call.Data) < 4 {
		return nil, nil
	}
	return f.outputs[hexutil.Encode(call.Data[:4])], nil
}

func (f *fakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error) {
	return &ethtypes.Header{Number: big.NewInt(100)}, nil
}

func (f *fakeBackend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000), nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return 60_000, nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	if f.receiptStatus != nil {
		f.receipts[tx.Hash()] = &ethtypes.Receipt{Status: *f.receiptStatus, TxHash: tx.Hash(), BlockNumber: big.NewInt(101)}
	}
	return nil
}

func (f *fakeBackend) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]ethtypes.Log, error) {
	return nil, nil
}

func (f *fakeBackend) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- ethtypes.Log) (ethereum.Subscription, error) {
	return event.NewSubscription(func(quit <-chan struct{}) error {
		<-quit
		return nil
	}), nil
}

func (f *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return f.chainID, nil
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if receipt, ok := f.receipts[txHash]; ok {
		return receipt, nil
	}
	return nil, ethereum.NotFound
}

func (f *fakeBackend) TransactionByHash(ctx context.Context, hash common.Hash) (*ethtypes.Transaction, bool, error) {
	return nil, false, ethereum.NotFound
}

func parseABI(t *testing.T, raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	require.NoError(t, err)
	return parsed
}

func newTestClient(t *testing.T, backend *fakeBackend, config Config) *Client {
	client, err := NewClient(context.Background(), backend, config, logging.NewNoOpLogger())
	require.NoError(t, err)
	return client
}

func TestClient_BalanceOfAndDecimals(t *testing.T) {
	backend := newFakeBackend()
	erc20 := parseABI(t, ERC20ABI)
	backend.setOutput(t, erc20, "balanceOf", big.NewInt(2500))
	backend.setOutput(t, erc20, "decimals", uint8(6))
	client := newTestClient(t, backend, Config{})

	balance, err := client.BalanceOf(context.Background(), tokenAddress, holderAddress)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance.Int64())

	decimals, err := client.Decimals(context.Background(), tokenAddress)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)

	_, err = client.BalanceOf(context.Background(), tokenAddress, "not-an-address")
	assert.Error(t, err)
	_, err = client.Decimals(context.Background(), "0x123")
	assert.Error(t, err)
}

func TestClient_GetReputation(t *testing.T) {
	backend := newFakeBackend()
	reputation := parseABI(t, ReputationABI)
	backend.setOutput(t, reputation, "getReputation", big.NewInt(82), big.NewInt(12), big.NewInt(9), big.NewInt(1))
	backend.setOutput(t, reputation, "getAverageRating", big.NewInt(4))
	client := newTestClient(t, backend, Config{ReputationAddress: reputationAddress})

	rep, err := client.GetReputation(context.Background(), strings.ToLower(holderAddress))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(holderAddress).Hex(), rep.CreatorAddress)
	assert.Equal(t, "82", rep.Score.String())
	assert.Equal(t, "12", rep.TotalRatings.String())
	assert.Equal(t, "9", rep.CompletedRequests.String())
	assert.Equal(t, "1", rep.DisputedRequests.String())
	assert.Equal(t, "4", rep.AverageRating.String())
	assert.Equal(t, "Excellent", rep.Level())
}

func TestClient_ReputationWithoutContract_ReturnsError(t *testing.T) {
	client := newTestClient(t, newFakeBackend(), Config{})

	_, err := client.GetReputation(context.Background(), holderAddress)
	assert.ErrorIs(t, err, ErrNoReputationContract)
	_, err = client.UpdateRequestStatus(context.Background(), holderAddress, "req-1", true)
	assert.ErrorIs(t, err, ErrNoReputationContract)
}

func TestClient_WritesWithoutKey_ReturnErrNoSigner(t *testing.T) {
	client := newTestClient(t, newFakeBackend(), Config{ReputationAddress: reputationAddress})

	_, err := client.Transfer(context.Background(), tokenAddress, holderAddress, big.NewInt(1))
	assert.ErrorIs(t, err, ErrNoSigner)
	_, err = client.SubmitRating(context.Background(), holderAddress, holderAddress, 5, "great")
	assert.ErrorIs(t, err, ErrNoSigner)
}

func TestClient_Transfer_SignsAndSends(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := newFakeBackend()
	client := newTestClient(t, backend, Config{PrivateKey: hexutil.Encode(crypto.FromECDSA(key))})
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), client.SignerAddress())

	txHash, err := client.Transfer(context.Background(), tokenAddress, holderAddress, big.NewInt(5000))
	require.NoError(t, err)

	require.Len(t, backend.sent, 1)
	tx := backend.sent[0]
	assert.Equal(t, tx.Hash().Hex(), txHash)
	assert.Equal(t, common.HexToAddress(tokenAddress), *tx.To())

	sender, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(backend.chainID), tx)
	require.NoError(t, err)
	assert.Equal(t, client.SignerAddress(), sender)

	erc20 := parseABI(t, ERC20ABI)
	method := erc20.Methods["transfer"]
	assert.True(t, bytes.Equal(method.ID, tx.Data()[:4]))
	args, err := method.Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(holderAddress), args[0])
	assert.Zero(t, big.NewInt(5000).Cmp(args[1].(*big.Int)))
}

func TestClient_Transfer_RejectsBadInput(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	client := newTestClient(t, newFakeBackend(), Config{PrivateKey: hexutil.Encode(crypto.FromECDSA(key))})

	_, err = client.Transfer(context.Background(), tokenAddress, "bad", big.NewInt(1))
	assert.Error(t, err)
	_, err = client.Transfer(context.Background(), tokenAddress, holderAddress, big.NewInt(0))
	assert.Error(t, err)
	_, err = client.Transfer(context.Background(), tokenAddress, holderAddress, nil)
	assert.Error(t, err)
}

func TestClient_UpdateRequestStatus_WaitMined(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	tests := []struct {
		name      string
		status    uint64
		expectErr error
	}{
		{name: "mined successfully", status: ethtypes.ReceiptStatusSuccessful},
		{name: "reverted", status: ethtypes.ReceiptStatusFailed, expectErr: ErrTransactionReverted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			status := tt.status
			backend.receiptStatus = &status
			client := newTestClient(t, backend, Config{
				PrivateKey:        hexutil.Encode(crypto.FromECDSA(key)),
				ReputationAddress: reputationAddress,
				WaitMined:         true,
			})

			txHash, err := client.UpdateRequestStatus(context.Background(), holderAddress, "6f1c1f4e-3b0a-4c8e-9f55-0a4b1f0b1c2d", true)
			assert.NotEmpty(t, txHash)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)

			reputation := parseABI(t, ReputationABI)
			args, err := reputation.Methods["updateRequestStatus"].Inputs.Unpack(backend.sent[0].Data()[4:])
			require.NoError(t, err)
			assert.Equal(t, "6f1c1f4e-3b0a-4c8e-9f55-0a4b1f0b1c2d", args[1])
			assert.Equal(t, true, args[2])
		})
	}
}

func TestClient_SubmitRating_ValidatesRating(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := newFakeBackend()
	client := newTestClient(t, backend, Config{
		PrivateKey:        hexutil.Encode(crypto.FromECDSA(key)),
		ReputationAddress: reputationAddress,
	})

	for _, rating := range []uint8{0, 6} {
		_, err := client.SubmitRating(context.Background(), holderAddress, tokenAddress, rating, "ok")
		assert.Error(t, err)
	}
	assert.Empty(t, backend.sent)

	_, err = client.SubmitRating(context.Background(), holderAddress, tokenAddress, 4, "solid work")
	require.NoError(t, err)
	assert.Len(t, backend.sent, 1)
}

func TestClient_TransactionStatus(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend, Config{})

	minedHash := common.HexToHash("0x01")
	revertedHash := common.HexToHash("0x02")
	backend.receipts[minedHash] = &ethtypes.Receipt{Status: ethtypes.ReceiptStatusSuccessful, BlockNumber: big.NewInt(7)}
	backend.receipts[revertedHash] = &ethtypes.Receipt{Status: ethtypes.ReceiptStatusFailed, BlockNumber: big.NewInt(8)}

	status, err := client.TransactionStatus(context.Background(), minedHash.Hex())
	require.NoError(t, err)
	assert.Equal(t, types.TransactionConfirmed, status.Status)
	assert.Equal(t, "7", status.BlockNumber.String())

	status, err = client.TransactionStatus(context.Background(), revertedHash.Hex())
	require.NoError(t, err)
	assert.Equal(t, types.TransactionFailed, status.Status)

	status, err = client.TransactionStatus(context.Background(), common.HexToHash("0x03").Hex())
	require.NoError(t, err)
	assert.Equal(t, types.TransactionPending, status.Status)
	assert.Nil(t, status.BlockNumber)

	_, err = client.TransactionStatus(context.Background(), "0x1234")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{RPCURL: "http://localhost:8545"}).Validate())
	assert.Error(t, (&Config{RPCURL: "http://localhost:8545", PrivateKey: "xyz"}).Validate())
	assert.Error(t, (&Config{RPCURL: "http://localhost:8545", ReputationAddress: "0x12"}).Validate())
}
