package interfaces

import (
	"context"
	"math/big"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/ethereum/go-ethereum/common"
)

// ChainOracle is the read/write capability against the network
type ChainOracle interface {
	GetCode(ctx context.Context, address common.Address) ([]byte, error)
	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)
	GetFeeData(ctx context.Context) (*business.FeeData, error)
	EstimateGas(ctx context.Context, call business.CallRequest) (uint64, error)
	StaticCall(ctx context.Context, call business.CallRequest) ([]byte, error)
	// TraceCall returns business.ErrStrategyUnsupported when the node has no tracing API
	TraceCall(ctx context.Context, call business.CallRequest) (*business.TraceResult, error)
	// SendTransaction submits the call and blocks until it is mined
	SendTransaction(ctx context.Context, call business.CallRequest) (*business.TransactionReceipt, error)
}

// Reporter consumes finished function profiles (rendering is handled elsewhere)
type Reporter interface {
	Report(ctx context.Context, profile *business.FunctionProfile) error
}

// ReputationTracker consumes one event per profiling run
type ReputationTracker interface {
	RecordRun(ctx context.Context, event business.RunEvent)
}
