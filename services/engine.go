package services

import (
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/interfaces"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rcrowley/go-metrics"
)

// EngineConfig configures every service built by NewEngine
type EngineConfig struct {
	Cache       CacheOptions
	Tables      CostTables
	Signals     []PaymasterSignal
	RunDelay    time.Duration
	MaxParallel int
	EntryPoint  *common.Address
	Registry    metrics.Registry
}

// Engine bundles the wired services sharing one oracle and metrics registry
type Engine struct {
	Estimator  *GasEstimationService
	Classifier *PaymasterClassifierService
	Costs      *PaymasterCostService
	Profiler   *ProfilingService
	Batch      *BatchProfilingService
	Registry   metrics.Registry
}

// NewEngine wires the estimator, classifier, cost model and profilers together
func NewEngine(oracle interfaces.ChainOracle, cfg EngineConfig) *Engine {
	registry := resolveRegistry(cfg.Registry)

	estimator := NewGasEstimationService(oracle, cfg.Cache, registry)
	classifier := NewPaymasterClassifierService(oracle, cfg.Signals, cfg.Cache, registry)
	costs := NewPaymasterCostService(oracle, estimator, classifier, cfg.Tables, cfg.Cache, registry)
	if cfg.EntryPoint != nil {
		costs.SetEntryPoint(*cfg.EntryPoint)
	}
	estimator.SetPaymasterModel(classifier, costs)

	profiler := NewProfilingService(oracle, estimator, classifier, costs, cfg.RunDelay, registry)

	return &Engine{
		Estimator:  estimator,
		Classifier: classifier,
		Costs:      costs,
		Profiler:   profiler,
		Batch:      NewBatchProfilingService(profiler, cfg.MaxParallel),
		Registry:   registry,
	}
}

// ClearCaches resets every session cache
func (e *Engine) ClearCaches() {
	e.Estimator.ClearCache()
	e.Classifier.ClearCache()
	e.Costs.ClearCache()
}
