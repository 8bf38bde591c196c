package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/helpers"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/interfaces"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/logger"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/hashicorp/go-multierror"
	"github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
)

// GasEstimationService estimates gas for a single call by trying strategies
// in decreasing order of fidelity
type GasEstimationService struct {
	oracle     interfaces.ChainOracle
	classifier interfaces.PaymasterClassifier
	costModel  interfaces.PaymasterCostModel
	cache      *ttlCache[*business.EstimationResult]
	registry   metrics.Registry
	logger     *zap.Logger

	mu          sync.RWMutex
	unsupported map[constants.Strategy]bool

	fallbacks     metrics.Counter
	simulateTimer metrics.Timer
}

// NewGasEstimationService creates a new gas estimation service bound to one oracle
func NewGasEstimationService(oracle interfaces.ChainOracle, cacheOpts CacheOptions, registry metrics.Registry) *GasEstimationService {
	registry = resolveRegistry(registry)
	return &GasEstimationService{
		oracle:        oracle,
		cache:         newTTLCache[*business.EstimationResult]("estimation", cacheOpts, registry),
		registry:      registry,
		logger:        logger.ForComponent(logger.Log, logger.ComponentEstimator),
		unsupported:   make(map[constants.Strategy]bool),
		fallbacks:     newCounter(registry, metricFallbacks),
		simulateTimer: newTimer(registry, metricSimulateTimer),
	}
}

// SetPaymasterModel wires the classifier and cost model used for requests that
// carry a paymaster address. Both are required for overhead to be applied.
func (s *GasEstimationService) SetPaymasterModel(classifier interfaces.PaymasterClassifier, costModel interfaces.PaymasterCostModel) {
	s.classifier = classifier
	s.costModel = costModel
}

// Simulate estimates the gas of req. An error is returned only for invalid
// requests, cancellation, or an explicit mode with FallbackOnError disabled.
func (s *GasEstimationService) Simulate(ctx context.Context, req business.EstimationRequest) (*business.EstimationResult, error) {
	start := time.Now()
	defer s.simulateTimer.UpdateSince(start)

	if req.Mode == "" {
		req.Mode = constants.ModeAuto
	}
	if err := validateEstimationRequest(req); err != nil {
		return nil, err
	}

	var cacheKey string
	if req.UseCache {
		cacheKey = estimationCacheKey(req)
		if cached, ok := s.cache.Get(cacheKey); ok {
			result := cached.Clone()
			result.FromCache = true
			return result, nil
		}
	}

	result, err := s.runStrategies(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.PaymasterAddress != nil {
		s.applyPaymasterOverhead(ctx, req, result)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("estimation cancelled: %w", err)
		}
	}

	if req.UseCache && !result.Fallback {
		s.cache.Set(cacheKey, result.Clone())
	}

	return result, nil
}

// ClearCache drops every cached estimate
func (s *GasEstimationService) ClearCache() {
	s.cache.Purge()
}

// CacheStats reports estimation cache performance
func (s *GasEstimationService) CacheStats() business.CacheStats {
	return s.cache.Stats()
}

// IsStrategySupported reports whether the strategy has not been marked unsupported
func (s *GasEstimationService) IsStrategySupported(strategy constants.Strategy) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.unsupported[strategy]
}

func (s *GasEstimationService) markUnsupported(strategy constants.Strategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unsupported[strategy] {
		s.logger.Info("marking strategy unsupported by oracle", zap.String("strategy", string(strategy)))
	}
	s.unsupported[strategy] = true
}

// strategyChain returns the ordered strategies for a request
func strategyChain(req business.EstimationRequest) []constants.Strategy {
	full := []constants.Strategy{constants.StrategyTrace, constants.StrategyEstimate, constants.StrategyStaticCall}

	var chain []constants.Strategy
	switch req.Mode {
	case constants.ModeAuto, constants.ModePaymaster:
		return full
	case constants.ModeTrace:
		chain = full
	case constants.ModeEstimate:
		chain = full[1:]
	case constants.ModeStaticCall:
		chain = full[2:]
	}

	if !req.FallbackOnError {
		return chain[:1]
	}
	return chain
}

// singleStrategy reports whether only the named strategy may run and its error propagates
func singleStrategy(req business.EstimationRequest) bool {
	return !req.FallbackOnError && req.Mode != constants.ModeAuto && req.Mode != constants.ModePaymaster
}

func (s *GasEstimationService) runStrategies(ctx context.Context, req business.EstimationRequest) (*business.EstimationResult, error) {
	var (
		attempts []business.StrategyAttempt
		failures *multierror.Error
	)

	for _, strategy := range strategyChain(req) {
		if !s.IsStrategySupported(strategy) {
			if singleStrategy(req) {
				return nil, fmt.Errorf("%s estimation failed: %w", strategy, business.ErrStrategyUnsupported)
			}
			continue
		}

		gas, err := s.runStrategy(ctx, strategy, req)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("estimation cancelled: %w", ctxErr)
		}
		if err != nil {
			attempts = append(attempts, business.StrategyAttempt{Strategy: strategy, Error: err.Error()})
			newCounter(s.registry, metricStrategyFailures, strategy).Inc(1)
			if errors.Is(err, business.ErrStrategyUnsupported) {
				s.markUnsupported(strategy)
			}
			s.logger.Debug("estimation strategy failed",
				zap.String("strategy", string(strategy)),
				zap.String("target", req.Target.Hex()),
				zap.Error(err))

			if singleStrategy(req) {
				return nil, fmt.Errorf("%s estimation failed: %w", strategy, err)
			}
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", strategy, err))
			continue
		}

		attempts = append(attempts, business.StrategyAttempt{Strategy: strategy, Success: true, GasUsed: gas})
		return &business.EstimationResult{
			Success:      true,
			GasUsed:      gas,
			BaseGas:      gas,
			Confidence:   confidenceFor(strategy),
			StrategyUsed: strategy,
			Attempts:     attempts,
		}, nil
	}

	if singleStrategy(req) {
		if err := failures.ErrorOrNil(); err != nil {
			return nil, fmt.Errorf("all estimation strategies failed: %w", err)
		}
		return nil, fmt.Errorf("all estimation strategies failed: %w", business.ErrStrategyUnsupported)
	}

	s.fallbacks.Inc(1)
	reason := "no supported estimation strategy"
	if err := failures.ErrorOrNil(); err != nil {
		reason = err.Error()
	}
	s.logger.Warn("all estimation strategies failed, using fallback",
		zap.String("target", req.Target.Hex()),
		zap.Int("attempts", len(attempts)))

	attempts = append(attempts, business.StrategyAttempt{
		Strategy: constants.StrategyFallback,
		Success:  true,
		GasUsed:  constants.FallbackGasEstimate,
	})
	return &business.EstimationResult{
		Success:      false,
		GasUsed:      constants.FallbackGasEstimate,
		BaseGas:      constants.FallbackGasEstimate,
		Confidence:   constants.FallbackConfidence,
		StrategyUsed: constants.StrategyFallback,
		Attempts:     attempts,
		Error:        reason,
		Fallback:     true,
	}, nil
}

func (s *GasEstimationService) runStrategy(ctx context.Context, strategy constants.Strategy, req business.EstimationRequest) (uint64, error) {
	call := req.CallRequest()

	switch strategy {
	case constants.StrategyTrace:
		trace, err := s.oracle.TraceCall(ctx, call)
		if err != nil {
			return 0, err
		}
		if trace == nil {
			return 0, errors.New("empty trace result")
		}
		if trace.Failed {
			return 0, fmt.Errorf("trace reported failure: %s: %w", trace.Error, business.ErrExecutionReverted)
		}
		if trace.GasUsed == 0 {
			return 0, errors.New("trace reported zero gas")
		}
		return trace.GasUsed, nil

	case constants.StrategyEstimate:
		gas, err := s.oracle.EstimateGas(ctx, call)
		if err != nil {
			return 0, err
		}
		if gas == 0 {
			return 0, errors.New("node estimated zero gas")
		}
		return gas, nil

	case constants.StrategyStaticCall:
		ret, err := s.oracle.StaticCall(ctx, call)
		if err != nil {
			return 0, err
		}
		return staticCallGas(req.Data, ret), nil
	}

	return 0, fmt.Errorf("unknown strategy %q", strategy)
}

// staticCallGas approximates the gas of a successful eth_call from its calldata and return size
func staticCallGas(data, ret []byte) uint64 {
	words := uint64((len(ret) + 31) / 32)
	return helpers.IntrinsicGas(data, constants.TxGas, constants.TxDataZeroGas, constants.TxDataNonZeroGas) +
		constants.StaticCallExecutionGas +
		words*constants.StaticCallReturnWordGas
}

func confidenceFor(strategy constants.Strategy) int {
	switch strategy {
	case constants.StrategyTrace:
		return constants.TraceConfidence
	case constants.StrategyEstimate:
		return constants.EstimateConfidence
	case constants.StrategyStaticCall:
		return constants.StaticCallConfidence
	default:
		return constants.FallbackConfidence
	}
}

// applyPaymasterOverhead folds the modelled paymaster overhead into the base estimate
func (s *GasEstimationService) applyPaymasterOverhead(ctx context.Context, req business.EstimationRequest, result *business.EstimationResult) {
	if s.classifier == nil || s.costModel == nil {
		s.logger.Warn("paymaster address given but no cost model configured",
			zap.String("paymaster", req.PaymasterAddress.Hex()))
		return
	}

	profile := s.classifier.Classify(ctx, *req.PaymasterAddress)
	breakdown := s.costModel.ComputeOverhead(ctx, profile, req)
	if breakdown == nil {
		return
	}

	result.BaseGas = result.GasUsed
	result.GasUsed = result.BaseGas + breakdown.TotalOverhead
	result.PaymasterOverhead = breakdown
	result.StrategyUsed = constants.StrategyPaymaster
	result.Confidence = helpers.MinInt(result.Confidence, breakdown.Confidence)

	s.logger.Debug("applied paymaster overhead",
		zap.String("paymaster", req.PaymasterAddress.Hex()),
		zap.Uint64("base_gas", result.BaseGas),
		zap.Uint64("overhead_gas", breakdown.TotalOverhead))
}

func validateEstimationRequest(req business.EstimationRequest) error {
	if helpers.IsZeroAddress(req.Target) {
		return business.NewValidationError("target", "address must not be zero")
	}
	if len(req.Data) < 4 {
		return business.NewValidationError("data", "calldata must start with a 4-byte selector")
	}
	switch req.Mode {
	case constants.ModeAuto, constants.ModeEstimate, constants.ModeStaticCall, constants.ModeTrace:
	case constants.ModePaymaster:
		if req.PaymasterAddress == nil {
			return business.NewValidationError("paymaster_address", "required in paymaster mode")
		}
	default:
		return business.NewValidationError("mode", fmt.Sprintf("unknown estimation mode %q", req.Mode))
	}
	if req.PaymasterAddress != nil && helpers.IsZeroAddress(*req.PaymasterAddress) {
		return business.NewValidationError("paymaster_address", "address must not be zero")
	}
	return nil
}

// estimationCacheKey hashes the canonical request fields
func estimationCacheKey(req business.EstimationRequest) string {
	paymaster := ""
	if req.PaymasterAddress != nil {
		paymaster = req.PaymasterAddress.Hex()
	}
	return helpers.CanonicalKey(
		req.Target.Hex(),
		hex.EncodeToString(req.Selector()),
		hex.EncodeToString(req.Args()),
		string(req.Mode),
		paymaster,
	)
}
