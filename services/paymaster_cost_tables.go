package services

import (
	"math/big"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/ethereum/go-ethereum/core/vm"
)

// TypeCostDefaults are the per-archetype figures used when measurement is unavailable
type TypeCostDefaults struct {
	Validation uint64
	PostOp     uint64
	Addend     uint64
}

// CostScenarioDefinition is a named linear growth rate
type CostScenarioDefinition struct {
	Name          string
	GrowthPercent float64
}

// CostTables holds every constant of the overhead model. Treat a value as
// immutable once handed to a service.
type CostTables struct {
	BaseOverhead      uint64
	FallbackOverhead  uint64
	TypeDefaults      map[constants.PaymasterType]TypeCostDefaults
	StorageIncrements map[string]uint64
	FeatureAddends    map[string]uint64
	OpcodeWeights     map[vm.OpCode]uint64
	ComplexityUnitGas uint64
	ComplexityCap     uint64
	Multipliers       map[constants.GasComplexity]float64
	Benchmarks        map[constants.PaymasterType]uint64

	// Recommendation thresholds
	HighOverheadThreshold  uint64
	HighStorageThreshold   uint64
	LowEfficiencyThreshold int
	LowConfidenceThreshold int

	// External dependency features lower the stability score
	ExternalDependencies  []string
	DependencyPenalty     float64
	FallbackPenalty       float64
	StoragePenaltyDivisor float64
	ComplexityPenalties   map[constants.GasComplexity]float64

	Scenarios          []CostScenarioDefinition
	DefaultGasPriceWei *big.Int
}

// DefaultCostTables returns a fresh copy of the standard cost model
func DefaultCostTables() CostTables {
	return CostTables{
		BaseOverhead:     15000,
		FallbackOverhead: 75000,
		TypeDefaults: map[constants.PaymasterType]TypeCostDefaults{
			constants.PaymasterSponsorship: {Validation: 12000, PostOp: 0, Addend: 0},
			constants.PaymasterToken:       {Validation: 35000, PostOp: 25000, Addend: 8000},
			constants.PaymasterVerifying:   {Validation: 18000, PostOp: 0, Addend: 3000},
			constants.PaymasterStaking:     {Validation: 28000, PostOp: 15000, Addend: 6000},
			constants.PaymasterConditional: {Validation: 20000, PostOp: 5000, Addend: 4000},
			constants.PaymasterDeposit:     {Validation: 22000, PostOp: 12000, Addend: 3000},
			constants.PaymasterUnknown:     {Validation: 30000, PostOp: 15000, Addend: 5000},
		},
		StorageIncrements: map[string]uint64{
			constants.FeatureDepositTracking: 5000,
			constants.FeatureStakingLedger:   5000,
			constants.FeatureWhitelist:       2100,
		},
		FeatureAddends: map[string]uint64{
			constants.FeatureTokenPayment:          2000,
			constants.FeatureSignatureVerification: 3000,
			constants.FeatureMultiToken:            4000,
			constants.FeaturePriceOracle:           6000,
			constants.FeatureRateLimiting:          2500,
			constants.FeatureTimeWindow:            1000,
		},
		OpcodeWeights: map[vm.OpCode]uint64{
			vm.SSTORE:       5,
			vm.CALL:         4,
			vm.DELEGATECALL: 4,
			vm.STATICCALL:   3,
			vm.SLOAD:        2,
			vm.CREATE:       6,
			vm.CREATE2:      6,
			vm.LOG0:         1,
			vm.LOG1:         1,
			vm.LOG2:         1,
			vm.LOG3:         1,
			vm.LOG4:         1,
			vm.KECCAK256:    1,
			vm.EXTCODESIZE:  1,
		},
		ComplexityUnitGas: 40,
		ComplexityCap:     20000,
		Multipliers: map[constants.GasComplexity]float64{
			constants.ComplexityLow:    0.9,
			constants.ComplexityMedium: 1.1,
			constants.ComplexityHigh:   1.3,
		},
		Benchmarks: map[constants.PaymasterType]uint64{
			constants.PaymasterSponsorship: 30000,
			constants.PaymasterToken:       95000,
			constants.PaymasterVerifying:   40000,
			constants.PaymasterStaking:     75000,
			constants.PaymasterConditional: 50000,
			constants.PaymasterDeposit:     60000,
			constants.PaymasterUnknown:     70000,
		},
		HighOverheadThreshold:  80000,
		HighStorageThreshold:   10000,
		LowEfficiencyThreshold: 60,
		LowConfidenceThreshold: 50,
		ExternalDependencies: []string{
			constants.FeaturePriceOracle,
			constants.FeatureMultiToken,
			constants.FeatureTimeWindow,
			constants.FeatureRateLimiting,
		},
		DependencyPenalty:     15,
		FallbackPenalty:       30,
		StoragePenaltyDivisor: 500,
		ComplexityPenalties: map[constants.GasComplexity]float64{
			constants.ComplexityLow:    0,
			constants.ComplexityMedium: 10,
			constants.ComplexityHigh:   20,
		},
		Scenarios: []CostScenarioDefinition{
			{Name: "conservative", GrowthPercent: 10},
			{Name: "moderate", GrowthPercent: 25},
			{Name: "aggressive", GrowthPercent: 50},
		},
		DefaultGasPriceWei: big.NewInt(constants.DefaultGasPriceWei),
	}
}

func (t CostTables) typeDefaults(paymasterType constants.PaymasterType) TypeCostDefaults {
	if defaults, ok := t.TypeDefaults[paymasterType]; ok {
		return defaults
	}
	return t.TypeDefaults[constants.PaymasterUnknown]
}

func (t CostTables) multiplier(complexity constants.GasComplexity) float64 {
	if m, ok := t.Multipliers[complexity]; ok {
		return m
	}
	return 1.0
}

func (t CostTables) benchmark(paymasterType constants.PaymasterType) uint64 {
	if b, ok := t.Benchmarks[paymasterType]; ok {
		return b
	}
	return t.Benchmarks[constants.PaymasterUnknown]
}

// bytecodeComplexity walks the bytecode, skipping PUSH immediates, and sums the
// opcode weights into a gas figure bounded by the cap
func (t CostTables) bytecodeComplexity(code []byte) uint64 {
	var score uint64
	for i := 0; i < len(code); i++ {
		op := vm.OpCode(code[i])
		score += t.OpcodeWeights[op]
		if op >= vm.PUSH1 && op <= vm.PUSH32 {
			i += int(op-vm.PUSH1) + 1
		}
	}
	gas := score * t.ComplexityUnitGas
	if gas > t.ComplexityCap {
		return t.ComplexityCap
	}
	return gas
}
