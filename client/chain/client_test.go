package chain_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/client/chain"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/logger"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

const (
	testChainID = 50312
	testKey     = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
)

var (
	testContract = common.HexToAddress("0x1000000000000000000000000000000000000001")
	gwei         = big.NewInt(1_000_000_000)
)

type rpcError struct {
	code    int
	message string
}

func (e *rpcError) Error() string  { return e.message }
func (e *rpcError) ErrorCode() int { return e.code }

// fakeEth serves the eth namespace from in-memory state
type fakeEth struct {
	mu             sync.Mutex
	chainID        int64
	code           map[common.Address]hexutil.Bytes
	noTip          bool
	sent           []*types.Transaction
	pendingPolls   int
	receiptGasUsed uint64
}

func (f *fakeEth) ChainId() (*hexutil.Big, error) {
	return (*hexutil.Big)(big.NewInt(f.chainID)), nil
}

func (f *fakeEth) GetCode(address common.Address, block string) (hexutil.Bytes, error) {
	return f.code[address], nil
}

func (f *fakeEth) GetBalance(address common.Address, block string) (*hexutil.Big, error) {
	return (*hexutil.Big)(big.NewInt(5e18)), nil
}

func (f *fakeEth) GasPrice() (*hexutil.Big, error) {
	return (*hexutil.Big)(new(big.Int).Mul(big.NewInt(6), gwei)), nil
}

func (f *fakeEth) MaxPriorityFeePerGas() (*hexutil.Big, error) {
	if f.noTip {
		return nil, &rpcError{code: -32601, message: "the method eth_maxPriorityFeePerGas does not exist/is not available"}
	}
	return (*hexutil.Big)(new(big.Int).Set(gwei)), nil
}

func calldata(args map[string]interface{}) []byte {
	for _, key := range []string{"input", "data"} {
		if raw, ok := args[key].(string); ok {
			data, err := hexutil.Decode(raw)
			if err == nil {
				return data
			}
		}
	}
	return nil
}

func (f *fakeEth) EstimateGas(args map[string]interface{}, block *string) (hexutil.Uint64, error) {
	data := calldata(args)
	if len(data) > 0 && data[0] == 0xff {
		return 0, &rpcError{code: 3, message: "execution reverted: Paymaster: insufficient deposit"}
	}
	return hexutil.Uint64(21000 + 16*uint64(len(data))), nil
}

func (f *fakeEth) Call(args map[string]interface{}, block *string) (hexutil.Bytes, error) {
	data := calldata(args)
	if len(data) > 0 && data[0] == 0xff {
		return nil, &rpcError{code: 3, message: "execution reverted"}
	}
	return common.LeftPadBytes([]byte{0x01}, 32), nil
}

func (f *fakeEth) GetTransactionCount(address common.Address, block string) (hexutil.Uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return hexutil.Uint64(len(f.sent)), nil
}

func (f *fakeEth) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return tx.Hash(), nil
}

func (f *fakeEth) GetTransactionReceipt(hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pendingPolls > 0 {
		f.pendingPolls--
		return nil, nil
	}
	return &types.Receipt{
		Type:              types.DynamicFeeTxType,
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: f.receiptGasUsed,
		GasUsed:           f.receiptGasUsed,
		Logs:              []*types.Log{},
		TxHash:            hash,
		EffectiveGasPrice: new(big.Int).Mul(big.NewInt(3), gwei),
		BlockNumber:       big.NewInt(77),
	}, nil
}

// fakeDebug serves debug_traceCall with a fixed callTracer frame
type fakeDebug struct{}

type traceFrame struct {
	GasUsed hexutil.Uint64 `json:"gasUsed"`
	Error   string         `json:"error,omitempty"`
}

func (fakeDebug) TraceCall(args map[string]interface{}, block string, config map[string]interface{}) (*traceFrame, error) {
	if config["tracer"] != "callTracer" {
		return nil, errors.New("unexpected tracer")
	}
	data := calldata(args)
	if len(data) > 0 && data[0] == 0xff {
		return &traceFrame{GasUsed: 23000, Error: "execution reverted"}, nil
	}
	return &traceFrame{GasUsed: 52000}, nil
}

func newFakeEth() *fakeEth {
	return &fakeEth{
		chainID:        testChainID,
		code:           map[common.Address]hexutil.Bytes{testContract: {0x60, 0x80, 0x60, 0x40}},
		receiptGasUsed: 45000,
	}
}

func startServer(t *testing.T, eth *fakeEth, withDebug bool) *rpc.Client {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", eth))
	if withDebug {
		require.NoError(t, server.RegisterName("debug", fakeDebug{}))
	}
	t.Cleanup(server.Stop)
	return rpc.DialInProc(server)
}

func testConfig() chain.Config {
	return chain.Config{
		ChainID:             testChainID,
		RateLimit:           1000,
		RateBurst:           100,
		DialAttempts:        1,
		ReceiptPollInterval: 5 * time.Millisecond,
		ReceiptTimeout:      time.Second,
	}
}

func newTestClient(t *testing.T, eth *fakeEth, withDebug bool, cfg chain.Config) *chain.Client {
	t.Helper()
	client, err := chain.NewClient(context.Background(), startServer(t, eth, withDebug), cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		cfg      func() chain.Config
		chainID  int64
		checkErr func(t *testing.T, err error)
		wantAddr bool
	}{
		{
			name:    "verifies chain id",
			cfg:     testConfig,
			chainID: testChainID,
		},
		{
			name:    "rejects another chain",
			cfg:     testConfig,
			chainID: 1,
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, chain.ErrChainMismatch)
			},
		},
		{
			name: "rejects malformed key",
			cfg: func() chain.Config {
				cfg := testConfig()
				cfg.PrivateKey = "0x1234"
				return cfg
			},
			chainID: testChainID,
			checkErr: func(t *testing.T, err error) {
				assert.True(t, business.IsValidationError(err))
			},
		},
		{
			name: "derives signer from key",
			cfg: func() chain.Config {
				cfg := testConfig()
				cfg.PrivateKey = "0x" + testKey
				return cfg
			},
			chainID:  testChainID,
			wantAddr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eth := newFakeEth()
			eth.chainID = tt.chainID

			client, err := chain.NewClient(context.Background(), startServer(t, eth, false), tt.cfg())
			if tt.checkErr != nil {
				require.Error(t, err)
				assert.Nil(t, client)
				tt.checkErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(testChainID), client.ChainID().Int64())
			_, hasSigner := client.Signer()
			assert.Equal(t, tt.wantAddr, hasSigner)
		})
	}
}

func TestClient_Reads(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, newFakeEth(), false, testConfig())

	code, err := client.GetCode(ctx, testContract)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40}, code)

	code, err = client.GetCode(ctx, common.HexToAddress("0x09"))
	require.NoError(t, err)
	assert.Empty(t, code)

	balance, err := client.GetBalance(ctx, testContract)
	require.NoError(t, err)
	assert.Equal(t, "5000000000000000000", balance.String())

	out, err := client.StaticCall(ctx, business.CallRequest{To: testContract, Data: []byte{0x01, 0x02, 0x03, 0x04}})
	require.NoError(t, err)
	assert.Len(t, out, 32)
}

func TestClient_GetFeeData(t *testing.T) {
	ctx := context.Background()

	t.Run("derives max fee from the priority fee", func(t *testing.T) {
		client := newTestClient(t, newFakeEth(), false, testConfig())
		fees, err := client.GetFeeData(ctx)
		require.NoError(t, err)
		assert.Equal(t, "6000000000", fees.GasPrice.String())
		assert.Equal(t, "1000000000", fees.MaxPriorityFeePerGas.String())
		assert.Equal(t, "11000000000", fees.MaxFeePerGas.String())
	})

	t.Run("legacy node only reports gas price", func(t *testing.T) {
		eth := newFakeEth()
		eth.noTip = true
		client := newTestClient(t, eth, false, testConfig())
		fees, err := client.GetFeeData(ctx)
		require.NoError(t, err)
		assert.Equal(t, "6000000000", fees.GasPrice.String())
		assert.Nil(t, fees.MaxFeePerGas)
	})
}

func TestClient_ErrorClassification(t *testing.T) {
	ctx := context.Background()
	reverting := business.CallRequest{To: testContract, Data: []byte{0xff, 0x00, 0x00, 0x00}}

	t.Run("reverts map to execution reverted", func(t *testing.T) {
		client := newTestClient(t, newFakeEth(), false, testConfig())

		_, err := client.EstimateGas(ctx, reverting)
		assert.ErrorIs(t, err, business.ErrExecutionReverted)
		assert.Contains(t, err.Error(), "insufficient deposit")

		_, err = client.StaticCall(ctx, reverting)
		assert.ErrorIs(t, err, business.ErrExecutionReverted)
	})

	t.Run("missing debug namespace is unsupported", func(t *testing.T) {
		client := newTestClient(t, newFakeEth(), false, testConfig())
		_, err := client.TraceCall(ctx, business.CallRequest{To: testContract, Data: []byte{0x01, 0x02, 0x03, 0x04}})
		assert.ErrorIs(t, err, business.ErrStrategyUnsupported)
	})

	t.Run("closed transport is a connectivity failure", func(t *testing.T) {
		client := newTestClient(t, newFakeEth(), false, testConfig())
		client.Close()

		_, err := client.GetCode(ctx, testContract)
		var connErr *business.ConnectivityError
		require.True(t, errors.As(err, &connErr))
		assert.Equal(t, "eth_getCode", connErr.Op)
	})
}

func TestClient_TraceCall(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, newFakeEth(), true, testConfig())

	trace, err := client.TraceCall(ctx, business.CallRequest{To: testContract, Data: []byte{0x01, 0x02, 0x03, 0x04}})
	require.NoError(t, err)
	assert.Equal(t, uint64(52000), trace.GasUsed)
	assert.False(t, trace.Failed)

	trace, err = client.TraceCall(ctx, business.CallRequest{To: testContract, Data: []byte{0xff, 0x00, 0x00, 0x00}})
	require.NoError(t, err)
	assert.True(t, trace.Failed)
	assert.Equal(t, "execution reverted", trace.Error)
}

func TestClient_SendTransaction(t *testing.T) {
	ctx := context.Background()
	call := business.CallRequest{To: testContract, Data: []byte{0x01, 0x02, 0x03, 0x04}}

	t.Run("requires a signing key", func(t *testing.T) {
		client := newTestClient(t, newFakeEth(), false, testConfig())
		_, err := client.SendTransaction(ctx, call)
		assert.ErrorIs(t, err, business.ErrNoSigner)
	})

	t.Run("signs a dynamic fee transaction and waits for the receipt", func(t *testing.T) {
		eth := newFakeEth()
		eth.pendingPolls = 2
		cfg := testConfig()
		cfg.PrivateKey = testKey
		client := newTestClient(t, eth, false, cfg)

		receipt, err := client.SendTransaction(ctx, call)
		require.NoError(t, err)
		assert.Equal(t, uint64(45000), receipt.GasUsed)
		assert.Equal(t, uint64(77), receipt.BlockNumber)
		assert.Equal(t, uint64(1), receipt.Status)
		assert.Equal(t, "3000000000", receipt.EffectiveGasPrice.String())

		require.Len(t, eth.sent, 1)
		tx := eth.sent[0]
		assert.Equal(t, receipt.TxHash, tx.Hash())
		assert.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
		assert.Equal(t, "1000000000", tx.GasTipCap().String())
		assert.Equal(t, "11000000000", tx.GasFeeCap().String())
		// 21000 + 4*16 estimated, plus 20%
		assert.Equal(t, uint64(25276), tx.Gas())
		assert.Equal(t, int64(testChainID), tx.ChainId().Int64())

		sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
		require.NoError(t, err)
		from, _ := client.Signer()
		assert.Equal(t, from, sender)
	})

	t.Run("gives up when the receipt never arrives", func(t *testing.T) {
		eth := newFakeEth()
		eth.pendingPolls = 1000
		cfg := testConfig()
		cfg.PrivateKey = testKey
		cfg.ReceiptTimeout = 20 * time.Millisecond
		client := newTestClient(t, eth, false, cfg)

		_, err := client.SendTransaction(ctx, call)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get receipt")
	})
}
