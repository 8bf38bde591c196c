package chain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/logger"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	methodNotFoundCode    = -32601
	gasLimitBufferPercent = 20
)

// ErrChainMismatch is returned when the endpoint serves a different chain
var ErrChainMismatch = errors.New("chain id mismatch")

// Config holds the connection settings for a chain client
type Config struct {
	RPCURL              string
	ChainID             int64
	PrivateKey          string
	RateLimit           float64
	RateBurst           int
	DialAttempts        int
	ReceiptPollInterval time.Duration
	ReceiptTimeout      time.Duration
}

func (c Config) withDefaults() Config {
	if c.RateLimit <= 0 {
		c.RateLimit = constants.DefaultRPCRate
	}
	if c.RateBurst <= 0 {
		c.RateBurst = constants.DefaultRPCBurst
	}
	if c.DialAttempts <= 0 {
		c.DialAttempts = constants.DefaultDialAttempts
	}
	if c.ReceiptPollInterval <= 0 {
		c.ReceiptPollInterval = constants.DefaultReceiptInterval
	}
	if c.ReceiptTimeout <= 0 {
		c.ReceiptTimeout = constants.DefaultReceiptTimeout
	}
	return c
}

// Client implements interfaces.ChainOracle over a JSON-RPC endpoint
type Client struct {
	rpc     *rpc.Client
	eth     *ethclient.Client
	limiter *rate.Limiter
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
	cfg     Config
	logger  *zap.Logger
}

// Dial connects to cfg.RPCURL and verifies the chain id, retrying with
// exponential backoff while the node is unreachable
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, business.NewValidationError("rpc_url", "must not be empty")
	}
	rpcClient, err := rpc.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, &business.ConnectivityError{Op: "dial", Err: err}
	}
	client, err := NewClient(ctx, rpcClient, cfg)
	if err != nil {
		rpcClient.Close()
		return nil, err
	}
	return client, nil
}

// NewClient wraps an established rpc client. The signing key is optional;
// without it SendTransaction returns business.ErrNoSigner.
func NewClient(ctx context.Context, rpcClient *rpc.Client, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	client := &Client{
		rpc:     rpcClient,
		eth:     ethclient.NewClient(rpcClient),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		cfg:     cfg,
		logger:  logger.ForComponent(logger.Log, logger.ComponentChain),
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, business.NewValidationError("private_key", "not a valid secp256k1 key")
		}
		client.key = key
		client.from = crypto.PubkeyToAddress(key.PublicKey)
	}

	chainID, err := client.verifyChain(ctx)
	if err != nil {
		return nil, err
	}
	client.chainID = chainID

	client.logger.Info("connected to chain",
		zap.String("chain_id", chainID.String()),
		zap.Bool("signer", client.key != nil))
	return client, nil
}

func (c *Client) verifyChain(ctx context.Context) (*big.Int, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	retry := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.cfg.DialAttempts-1)), ctx)

	attempt := 0
	chainID, err := backoff.RetryWithData(func() (*big.Int, error) {
		attempt++
		id, err := c.eth.ChainID(ctx)
		if err != nil {
			c.logger.Warn("chain id lookup failed", zap.Int("attempt", attempt), zap.Error(err))
			return nil, err
		}
		if c.cfg.ChainID != 0 && id.Int64() != c.cfg.ChainID {
			return nil, backoff.Permanent(errors.Wrapf(ErrChainMismatch, "connected to chain %s, expected %d", id, c.cfg.ChainID))
		}
		return id, nil
	}, retry)
	if errors.Is(err, ErrChainMismatch) {
		return nil, err
	}
	if err != nil {
		return nil, &business.ConnectivityError{Op: "chain_id", Err: err}
	}
	return chainID, nil
}

// Close releases the underlying rpc connection
func (c *Client) Close() {
	c.rpc.Close()
}

// ChainID returns the verified chain id
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Signer returns the transaction sender address, if a key is configured
func (c *Client) Signer() (common.Address, bool) {
	return c.from, c.key != nil
}

func (c *Client) wait(ctx context.Context) error {
	return errors.Wrap(c.limiter.Wait(ctx), "rate limiter")
}

func (c *Client) GetCode(ctx context.Context, address common.Address) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	code, err := c.eth.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, classify("eth_getCode", err)
	}
	return code, nil
}

func (c *Client) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	balance, err := c.eth.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, classify("eth_getBalance", err)
	}
	return balance, nil
}

// GetFeeData quotes the legacy gas price and, when the node supports it,
// the EIP-1559 tip with maxFee = 2*(gasPrice-tip)+tip
func (c *Client) GetFeeData(ctx context.Context) (*business.FeeData, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, classify("eth_gasPrice", err)
	}
	fees := &business.FeeData{GasPrice: gasPrice}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	tip, err := c.eth.SuggestGasTipCap(ctx)
	if err != nil {
		c.logger.Debug("priority fee unavailable", zap.Error(err))
		return fees, nil
	}
	base := new(big.Int).Sub(gasPrice, tip)
	if base.Sign() < 0 {
		base.SetInt64(0)
	}
	fees.MaxPriorityFeePerGas = tip
	fees.MaxFeePerGas = new(big.Int).Add(new(big.Int).Mul(base, big.NewInt(2)), tip)
	return fees, nil
}

func (c *Client) EstimateGas(ctx context.Context, call business.CallRequest) (uint64, error) {
	if err := c.wait(ctx); err != nil {
		return 0, err
	}
	gas, err := c.eth.EstimateGas(ctx, toCallMsg(call))
	if err != nil {
		return 0, classify("eth_estimateGas", err)
	}
	return gas, nil
}

func (c *Client) StaticCall(ctx context.Context, call business.CallRequest) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	out, err := c.eth.CallContract(ctx, toCallMsg(call), nil)
	if err != nil {
		return nil, classify("eth_call", err)
	}
	return out, nil
}

// callFrame is the top-level frame returned by the callTracer
type callFrame struct {
	GasUsed      hexutil.Uint64 `json:"gasUsed"`
	Error        string         `json:"error,omitempty"`
	RevertReason string         `json:"revertReason,omitempty"`
}

// TraceCall runs debug_traceCall with the callTracer. Nodes without the
// debug namespace yield business.ErrStrategyUnsupported.
func (c *Client) TraceCall(ctx context.Context, call business.CallRequest) (*business.TraceResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	var frame callFrame
	err := c.rpc.CallContext(ctx, &frame, "debug_traceCall", toCallArg(call), "latest", map[string]interface{}{
		"tracer": "callTracer",
	})
	if err != nil {
		return nil, classify("debug_traceCall", err)
	}
	result := &business.TraceResult{
		GasUsed: uint64(frame.GasUsed),
		Failed:  frame.Error != "",
		Error:   frame.Error,
	}
	if frame.RevertReason != "" {
		result.Error = frame.Error + ": " + frame.RevertReason
	}
	return result, nil
}

// SendTransaction signs and submits an EIP-1559 transaction from the
// configured key, then polls until the receipt is available
func (c *Client) SendTransaction(ctx context.Context, call business.CallRequest) (*business.TransactionReceipt, error) {
	if c.key == nil {
		return nil, business.ErrNoSigner
	}
	call.From = c.from

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, classify("eth_getTransactionCount", err)
	}

	fees, err := c.GetFeeData(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get fee data")
	}
	tip := fees.MaxPriorityFeePerGas
	feeCap := fees.MaxFeePerGas
	if tip == nil || feeCap == nil {
		tip, feeCap = fees.GasPrice, fees.GasPrice
	}

	gasLimit := call.Gas
	if gasLimit == 0 {
		estimated, err := c.EstimateGas(ctx, call)
		if err != nil {
			return nil, errors.Wrap(err, "failed to estimate gas limit")
		}
		gasLimit = estimated + estimated*gasLimitBufferPercent/100
	}

	value := call.Value
	if value == nil {
		value = new(big.Int)
	}
	to := call.To
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gasLimit,
		To:        &to,
		Value:     value,
		Data:      call.Data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return nil, classify("eth_sendRawTransaction", err)
	}
	c.logger.Debug("transaction submitted",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", gasLimit))

	receipt, err := c.waitForReceipt(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}

	return &business.TransactionReceipt{
		TxHash:            receipt.TxHash,
		BlockNumber:       receipt.BlockNumber.Uint64(),
		GasUsed:           receipt.GasUsed,
		EffectiveGasPrice: receipt.EffectiveGasPrice,
		Status:            receipt.Status,
	}, nil
}

func (c *Client) waitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	polls := uint64(c.cfg.ReceiptTimeout / c.cfg.ReceiptPollInterval)
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.cfg.ReceiptPollInterval), polls), ctx)

	receipt, err := backoff.RetryWithData(func() (*types.Receipt, error) {
		if err := c.wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		receipt, err := c.eth.TransactionReceipt(ctx, hash)
		if errors.Is(err, ethereum.NotFound) {
			return nil, err
		}
		if err != nil {
			return nil, backoff.Permanent(classify("eth_getTransactionReceipt", err))
		}
		return receipt, nil
	}, policy)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get receipt for %s", hash.Hex())
	}
	return receipt, nil
}

func toCallMsg(call business.CallRequest) ethereum.CallMsg {
	to := call.To
	return ethereum.CallMsg{
		From:  call.From,
		To:    &to,
		Gas:   call.Gas,
		Value: call.Value,
		Data:  call.Data,
	}
}

func toCallArg(call business.CallRequest) map[string]interface{} {
	arg := map[string]interface{}{
		"from":  call.From,
		"to":    call.To,
		"input": hexutil.Bytes(call.Data),
	}
	if call.Value != nil {
		arg["value"] = (*hexutil.Big)(call.Value)
	}
	if call.Gas != 0 {
		arg["gas"] = hexutil.Uint64(call.Gas)
	}
	return arg
}

// classify maps transport and JSON-RPC failures onto the business errors
func classify(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, op)
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		message := strings.ToLower(rpcErr.Error())
		switch {
		case rpcErr.ErrorCode() == methodNotFoundCode,
			strings.Contains(message, "method not found"),
			strings.Contains(message, "does not exist/is not available"):
			return errors.Wrapf(business.ErrStrategyUnsupported, "%s: %s", op, rpcErr.Error())
		case strings.Contains(message, "revert"):
			return errors.Wrapf(business.ErrExecutionReverted, "%s: %s", op, rpcErr.Error())
		}
		return errors.Wrap(err, op)
	}

	if strings.Contains(strings.ToLower(err.Error()), "execution reverted") {
		return errors.Wrapf(business.ErrExecutionReverted, "%s: %s", op, err.Error())
	}
	return &business.ConnectivityError{Op: op, Err: err}
}
