package business

import (
	"math/big"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// ProfilingRun is one repeated call of a profiled function
type ProfilingRun struct {
	Run               int                     `json:"run"`
	Args              []byte                  `json:"args"`
	GasUsed           uint64                  `json:"gas_used"`
	Mode              constants.ProfilingMode `json:"mode"`
	Strategy          constants.Strategy      `json:"strategy,omitempty"`
	TxHash            *common.Hash            `json:"tx_hash,omitempty"`
	BlockNumber       *uint64                 `json:"block_number,omitempty"`
	PaymasterUsed     bool                    `json:"paymaster_used"`
	PaymasterAddress  *common.Address         `json:"paymaster_address,omitempty"`
	PaymasterOverhead uint64                  `json:"paymaster_overhead,omitempty"`
	CostToken         *float64                `json:"cost_token,omitempty"`
	CostWei           *big.Int                `json:"cost_wei,omitempty"`
	Duration          time.Duration           `json:"duration"`
}

// CostStats aggregates per-run costs in native token units
type CostStats struct {
	Min      float64  `json:"min_cost"`
	Max      float64  `json:"max_cost"`
	Avg      float64  `json:"avg_cost"`
	Total    float64  `json:"total_cost"`
	TotalWei *big.Int `json:"total_cost_wei"`
	Count    int      `json:"cost_count"`
}

// AggregatedStats summarises gas usage over all runs of a function.
// Cost is nil when no run produced a cost.
type AggregatedStats struct {
	Min       uint64     `json:"min"`
	Max       uint64     `json:"max"`
	Avg       uint64     `json:"avg"`
	Total     uint64     `json:"total"`
	CallCount int        `json:"call_count"`
	Cost      *CostStats `json:"cost,omitempty"`
}

// FunctionProfile is the published result of profiling one function
type FunctionProfile struct {
	SessionID uuid.UUID               `json:"session_id"`
	Target    common.Address          `json:"target"`
	Function  string                  `json:"function"`
	Mode      constants.ProfilingMode `json:"mode"`
	Stats     AggregatedStats         `json:"stats"`
	Runs      []ProfilingRun          `json:"runs"`
	StartedAt time.Time               `json:"started_at"`
	Duration  time.Duration           `json:"duration"`
}

// RunEvent is the per-run record handed to a reputation tracker
type RunEvent struct {
	SessionID uuid.UUID
	Target    common.Address
	Function  string
	Run       int
	Success   bool
	GasUsed   uint64
	Cost      *float64
	Duration  time.Duration
	Error     string
}
