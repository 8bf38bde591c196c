package constants

// Strategy identifies a gas estimation technique.
type Strategy string

const (
	StrategyTrace      Strategy = "trace"
	StrategyEstimate   Strategy = "estimate"
	StrategyStaticCall Strategy = "staticCall"
	StrategyFallback   Strategy = "fallback"
	// StrategyPaymaster tags results whose base gas was combined with paymaster overhead.
	StrategyPaymaster Strategy = "paymaster_simulation"
)

// EstimationMode is the strategy selection requested by the caller.
type EstimationMode string

const (
	ModeAuto       EstimationMode = "auto"
	ModeEstimate   EstimationMode = "estimate"
	ModeStaticCall EstimationMode = "staticCall"
	ModeTrace      EstimationMode = "trace"
	ModePaymaster  EstimationMode = "paymaster"
)

// Confidence weights per strategy (0-100)
const (
	TraceConfidence      = 95
	EstimateConfidence   = 85
	StaticCallConfidence = 70
	FallbackConfidence   = 25
)

// Gas constants used by the estimators
const (
	TxGas                   = uint64(21000)
	TxDataZeroGas           = uint64(4)
	TxDataNonZeroGas        = uint64(16)
	StaticCallExecutionGas  = uint64(30000)
	StaticCallReturnWordGas = uint64(200)
	FallbackGasEstimate     = uint64(100000)
)

// ProfilingMode selects how repeated runs are produced.
type ProfilingMode string

const (
	ProfilingModeSimulation  ProfilingMode = "simulation"
	ProfilingModeTransaction ProfilingMode = "transaction"
)
