package business

import (
	"math/big"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/ethereum/go-ethereum/common"
)

// CostComponent is a single named contribution to paymaster overhead
type CostComponent struct {
	Name        string `json:"name"`
	Gas         uint64 `json:"gas"`
	Source      string `json:"source"` // constant, measured, default, derived
	Description string `json:"description"`
}

// CostBreakdown explains the overhead a paymaster adds to a call
type CostBreakdown struct {
	Base               uint64          `json:"base"`
	Validation         uint64          `json:"validation"`
	PostOp             uint64          `json:"post_op"`
	Storage            uint64          `json:"storage"`
	Complexity         uint64          `json:"complexity"`
	TypeSpecific       uint64          `json:"type_specific"`
	FeatureSpecific    uint64          `json:"feature_specific"`
	Multiplier         float64         `json:"multiplier"`
	Components         []CostComponent `json:"components"`
	TotalOverhead      uint64          `json:"total_overhead"`
	Confidence         int             `json:"confidence"`
	Fallback           bool            `json:"fallback"`
	MeasuredValidation bool            `json:"measured_validation"`
	MeasuredPostOp     bool            `json:"measured_post_op"`
	Error              string          `json:"error,omitempty"`
}

// Clone returns a deep copy of the breakdown
func (b *CostBreakdown) Clone() *CostBreakdown {
	if b == nil {
		return nil
	}
	clone := *b
	clone.Components = append([]CostComponent(nil), b.Components...)
	return &clone
}

// CostMetrics summarises a paymaster's cost profile
type CostMetrics struct {
	OverheadGas        uint64   `json:"overhead_gas"`
	BenchmarkGas       uint64   `json:"benchmark_gas"`
	GasPriceWei        *big.Int `json:"gas_price_wei"`
	OverheadCostWei    *big.Int `json:"overhead_cost_wei"`
	OverheadCostToken  float64  `json:"overhead_cost_token"`
	DailyCostToken     float64  `json:"daily_cost_token"`
	EfficiencyScore    int      `json:"efficiency_score"`
	StabilityScore     int      `json:"stability_score"`
	ScalabilityScore   int      `json:"scalability_score"`
	GasPriceFromOracle bool     `json:"gas_price_from_oracle"`
}

// Recommendation is a threshold-triggered optimisation hint
type Recommendation struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// CostScenario is a deterministic linear growth projection
type CostScenario struct {
	Name               string  `json:"name"`
	GrowthPercent      float64 `json:"growth_percent"`
	TimeframeDays      int     `json:"timeframe_days"`
	ProjectedDailyTx   float64 `json:"projected_daily_tx"`
	ProjectedCostToken float64 `json:"projected_cost_token"`
}

// CostReport is the result of analysing a paymaster's costs
type CostReport struct {
	Address         common.Address          `json:"address"`
	PrimaryType     constants.PaymasterType `json:"primary_type"`
	Profile         *PaymasterProfile       `json:"profile"`
	Breakdown       *CostBreakdown          `json:"breakdown"`
	Metrics         CostMetrics             `json:"metrics"`
	Recommendations []Recommendation        `json:"recommendations"`
	Scenarios       []CostScenario          `json:"scenarios"`
	GeneratedAt     time.Time               `json:"generated_at"`
}
