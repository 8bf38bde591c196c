package business

import (
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/ethereum/go-ethereum/common"
)

// EstimationRequest describes a single gas estimation
type EstimationRequest struct {
	Target           common.Address
	From             common.Address
	Data             []byte // 4-byte selector followed by encoded arguments
	Mode             constants.EstimationMode
	PaymasterAddress *common.Address
	UseCache         bool
	FallbackOnError  bool
}

// NewEstimationRequest returns an auto-mode request with caching and fallback enabled
func NewEstimationRequest(target common.Address, data []byte) EstimationRequest {
	return EstimationRequest{
		Target:          target,
		Data:            data,
		Mode:            constants.ModeAuto,
		UseCache:        true,
		FallbackOnError: true,
	}
}

// Selector returns the 4-byte function selector, or nil when data is too short
func (r EstimationRequest) Selector() []byte {
	if len(r.Data) < 4 {
		return nil
	}
	return r.Data[:4]
}

// Args returns the encoded arguments after the selector
func (r EstimationRequest) Args() []byte {
	if len(r.Data) < 4 {
		return nil
	}
	return r.Data[4:]
}

// CallRequest converts the estimation request into an oracle call
func (r EstimationRequest) CallRequest() CallRequest {
	return CallRequest{From: r.From, To: r.Target, Data: r.Data}
}

// StrategyAttempt records one strategy tried while estimating
type StrategyAttempt struct {
	Strategy constants.Strategy `json:"strategy"`
	Success  bool               `json:"success"`
	GasUsed  uint64             `json:"gas_used,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// EstimationResult is the outcome of a gas estimation
type EstimationResult struct {
	Success           bool               `json:"success"`
	GasUsed           uint64             `json:"gas_used"`
	BaseGas           uint64             `json:"base_gas"`
	Confidence        int                `json:"confidence"`
	StrategyUsed      constants.Strategy `json:"strategy_used"`
	Attempts          []StrategyAttempt  `json:"attempts"`
	PaymasterOverhead *CostBreakdown     `json:"paymaster_overhead,omitempty"`
	Error             string             `json:"error,omitempty"`
	Fallback          bool               `json:"fallback"`
	FromCache         bool               `json:"from_cache"`
}

// Clone returns a copy that shares neither the attempts slice nor the overhead breakdown
func (r *EstimationResult) Clone() *EstimationResult {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Attempts = append([]StrategyAttempt(nil), r.Attempts...)
	clone.PaymasterOverhead = r.PaymasterOverhead.Clone()
	return &clone
}
