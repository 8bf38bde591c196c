package interfaces

import (
	"context"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/api/params"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/ethereum/go-ethereum/common"
)

// GasEstimator produces single-call gas estimates
type GasEstimator interface {
	Simulate(ctx context.Context, req business.EstimationRequest) (*business.EstimationResult, error)
}

// PaymasterClassifier infers a sponsor contract's type and features
type PaymasterClassifier interface {
	Classify(ctx context.Context, address common.Address) *business.PaymasterProfile
}

// PaymasterCostModel converts a classification into an overhead estimate
type PaymasterCostModel interface {
	ComputeOverhead(ctx context.Context, profile *business.PaymasterProfile, req business.EstimationRequest) *business.CostBreakdown
	AnalyzeCosts(ctx context.Context, params params.AnalyzeCostsParams) (*business.CostReport, error)
}

// FunctionProfiler drives repeated runs of a contract function
type FunctionProfiler interface {
	ProfileFunction(ctx context.Context, params params.ProfileFunctionParams) (*business.FunctionProfile, error)
}
