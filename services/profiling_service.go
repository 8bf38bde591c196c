package services

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/helpers"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/interfaces"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/logger"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/api/params"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
)

// RunFailureError aborts a profiling session; completed runs are discarded
type RunFailureError struct {
	Run      int
	RunCount int
	Function string
	Err      error
}

func (e *RunFailureError) Error() string {
	return fmt.Sprintf("profiling %s failed at run %d of %d: %v", e.Function, e.Run, e.RunCount, e.Err)
}

func (e *RunFailureError) Unwrap() error {
	return e.Err
}

// PacerFactory builds the delay policy between consecutive transaction runs
type PacerFactory func() backoff.BackOff

// ConstantPacer returns a factory for a fixed inter-run delay
func ConstantPacer(delay time.Duration) PacerFactory {
	return func() backoff.BackOff {
		return backoff.NewConstantBackOff(delay)
	}
}

// ProfilingService drives repeated runs of one contract function and
// aggregates gas and cost statistics
type ProfilingService struct {
	oracle     interfaces.ChainOracle
	estimator  interfaces.GasEstimator
	classifier interfaces.PaymasterClassifier
	costModel  interfaces.PaymasterCostModel
	reporter   interfaces.Reporter
	tracker    interfaces.ReputationTracker
	pacer      PacerFactory
	logger     *zap.Logger

	runTimer       metrics.Timer
	failedSessions metrics.Counter
}

// NewProfilingService creates a new profiling service
func NewProfilingService(
	oracle interfaces.ChainOracle,
	estimator interfaces.GasEstimator,
	classifier interfaces.PaymasterClassifier,
	costModel interfaces.PaymasterCostModel,
	runDelay time.Duration,
	registry metrics.Registry,
) *ProfilingService {
	registry = resolveRegistry(registry)
	return &ProfilingService{
		oracle:         oracle,
		estimator:      estimator,
		classifier:     classifier,
		costModel:      costModel,
		pacer:          ConstantPacer(runDelay),
		logger:         logger.ForComponent(logger.Log, logger.ComponentProfiler),
		runTimer:       newTimer(registry, metricProfilingRun),
		failedSessions: newCounter(registry, metricProfilingFailed),
	}
}

// SetReporter registers a consumer for finished profiles
func (s *ProfilingService) SetReporter(reporter interfaces.Reporter) {
	s.reporter = reporter
}

// SetReputationTracker registers a consumer for per-run events
func (s *ProfilingService) SetReputationTracker(tracker interfaces.ReputationTracker) {
	s.tracker = tracker
}

// SetPacer replaces the inter-run delay policy
func (s *ProfilingService) SetPacer(pacer PacerFactory) {
	if pacer != nil {
		s.pacer = pacer
	}
}

// ProfileFunction runs the function RunCount times sequentially. Any failed run
// aborts the session with a *RunFailureError.
func (s *ProfilingService) ProfileFunction(ctx context.Context, p params.ProfileFunctionParams) (*business.FunctionProfile, error) {
	if p.Mode == "" {
		p.Mode = constants.ProfilingModeSimulation
	}
	if p.EstimationMode == "" {
		p.EstimationMode = constants.ModeAuto
	}
	if err := validateProfileParams(p); err != nil {
		return nil, err
	}
	selector, err := helpers.ResolveSelector(p.Function)
	if err != nil {
		return nil, business.NewValidationError("function", err.Error())
	}

	sessionID := uuid.New()
	startedAt := time.Now()
	log := s.logger.With(
		zap.String("session_id", sessionID.String()),
		zap.String("target", p.Target.Hex()),
		zap.String("function", p.Function),
		zap.String("mode", string(p.Mode)))
	log.Info("starting profiling session", zap.Int("run_count", p.RunCount))

	pacer := s.pacer()
	pacer.Reset()

	acc := newStatsAccumulator()
	runs := make([]business.ProfilingRun, 0, p.RunCount)

	for run := 1; run <= p.RunCount; run++ {
		if run > 1 && p.Mode == constants.ProfilingModeTransaction {
			if err := waitForNextRun(ctx, pacer); err != nil {
				s.failedSessions.Inc(1)
				return nil, &RunFailureError{Run: run, RunCount: p.RunCount, Function: p.Function, Err: err}
			}
		}

		runStart := time.Now()
		record, err := s.executeRun(ctx, p, selector, run)
		duration := time.Since(runStart)
		s.runTimer.Update(duration)
		s.recordRunEvent(ctx, sessionID, p, run, record, duration, err)

		if err != nil {
			s.failedSessions.Inc(1)
			log.Warn("profiling run failed", zap.Int("run", run), zap.Error(err))
			return nil, &RunFailureError{Run: run, RunCount: p.RunCount, Function: p.Function, Err: err}
		}

		record.Duration = duration
		acc.add(*record)
		runs = append(runs, *record)
		log.Debug("profiling run completed", zap.Int("run", run), zap.Uint64("gas_used", record.GasUsed))
	}

	profile := &business.FunctionProfile{
		SessionID: sessionID,
		Target:    p.Target,
		Function:  p.Function,
		Mode:      p.Mode,
		Stats:     acc.finalize(),
		Runs:      runs,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
	}

	log.Info("profiling session completed",
		zap.Uint64("avg_gas", profile.Stats.Avg),
		zap.Uint64("min_gas", profile.Stats.Min),
		zap.Uint64("max_gas", profile.Stats.Max))

	if s.reporter != nil {
		if err := s.reporter.Report(ctx, profile); err != nil {
			log.Warn("failed to report profile", zap.Error(err))
		}
	}

	return profile, nil
}

func waitForNextRun(ctx context.Context, pacer backoff.BackOff) error {
	delay := pacer.NextBackOff()
	if delay == backoff.Stop || delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *ProfilingService) executeRun(ctx context.Context, p params.ProfileFunctionParams, selector []byte, run int) (*business.ProfilingRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args := p.Args
	if p.ArgsProvider != nil {
		provided, err := p.ArgsProvider(run)
		if err != nil {
			return nil, fmt.Errorf("failed to build arguments: %w", err)
		}
		args = provided
	}

	req := business.EstimationRequest{
		Target:           p.Target,
		From:             p.From,
		Data:             helpers.EncodeCall(selector, args),
		Mode:             p.EstimationMode,
		PaymasterAddress: p.PaymasterAddress,
		UseCache:         false,
		FallbackOnError:  true,
	}
	record := &business.ProfilingRun{
		Run:              run,
		Args:             args,
		Mode:             p.Mode,
		PaymasterAddress: p.PaymasterAddress,
	}

	var price *big.Int
	switch p.Mode {
	case constants.ProfilingModeSimulation:
		result, err := s.estimator.Simulate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate: %w", err)
		}
		if !result.Success || result.Fallback {
			return nil, fmt.Errorf("estimation degraded to fallback: %s", result.Error)
		}
		record.GasUsed = result.GasUsed
		record.Strategy = result.StrategyUsed
		if result.PaymasterOverhead != nil {
			record.PaymasterUsed = true
			record.PaymasterOverhead = result.PaymasterOverhead.TotalOverhead
		}

	case constants.ProfilingModeTransaction:
		receipt, err := s.oracle.SendTransaction(ctx, business.CallRequest{
			From:  p.From,
			To:    p.Target,
			Data:  req.Data,
			Value: p.Value,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to send transaction: %w", err)
		}
		if receipt == nil {
			return nil, fmt.Errorf("no receipt returned for transaction")
		}
		if receipt.Status == 0 {
			return nil, fmt.Errorf("transaction %s reverted: %w", receipt.TxHash.Hex(), business.ErrExecutionReverted)
		}
		txHash := receipt.TxHash
		blockNumber := receipt.BlockNumber
		record.TxHash = &txHash
		record.BlockNumber = &blockNumber
		record.GasUsed = receipt.GasUsed
		price = receipt.EffectiveGasPrice

		if p.PaymasterAddress != nil && s.classifier != nil && s.costModel != nil {
			profile := s.classifier.Classify(ctx, *p.PaymasterAddress)
			breakdown := s.costModel.ComputeOverhead(ctx, profile, req)
			record.PaymasterUsed = true
			record.PaymasterOverhead = breakdown.TotalOverhead
			record.GasUsed += breakdown.TotalOverhead
		}
	}

	if price == nil {
		price = s.currentGasPrice(ctx)
	}
	if price != nil {
		record.CostWei = helpers.GasCostWei(record.GasUsed, price)
		cost := helpers.WeiToToken(record.CostWei)
		record.CostToken = &cost
	}

	return record, nil
}

// currentGasPrice returns nil when the oracle cannot quote a price
func (s *ProfilingService) currentGasPrice(ctx context.Context) *big.Int {
	fees, err := s.oracle.GetFeeData(ctx)
	if err != nil || fees == nil {
		s.logger.Debug("gas price unavailable, run cost omitted", zap.Error(err))
		return nil
	}
	price := fees.EffectiveGasPrice()
	if price == nil || price.Sign() <= 0 {
		return nil
	}
	return price
}

func (s *ProfilingService) recordRunEvent(ctx context.Context, sessionID uuid.UUID, p params.ProfileFunctionParams, run int, record *business.ProfilingRun, duration time.Duration, runErr error) {
	if s.tracker == nil {
		return
	}
	event := business.RunEvent{
		SessionID: sessionID,
		Target:    p.Target,
		Function:  p.Function,
		Run:       run,
		Success:   runErr == nil,
		Duration:  duration,
	}
	if record != nil {
		event.GasUsed = record.GasUsed
		event.Cost = record.CostToken
	}
	if runErr != nil {
		event.Error = runErr.Error()
	}
	s.tracker.RecordRun(ctx, event)
}

func validateProfileParams(p params.ProfileFunctionParams) error {
	if helpers.IsZeroAddress(p.Target) {
		return business.NewValidationError("target", "address must not be zero")
	}
	if p.Function == "" {
		return business.NewValidationError("function", "function signature or selector is required")
	}
	if p.RunCount <= 0 {
		return business.NewValidationError("run_count", "must be positive")
	}
	switch p.Mode {
	case constants.ProfilingModeSimulation, constants.ProfilingModeTransaction:
	default:
		return business.NewValidationError("mode", fmt.Sprintf("unknown profiling mode %q", p.Mode))
	}
	if p.PaymasterAddress != nil && helpers.IsZeroAddress(*p.PaymasterAddress) {
		return business.NewValidationError("paymaster_address", "address must not be zero")
	}
	return nil
}
