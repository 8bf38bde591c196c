package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/helpers"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/interfaces"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/logger"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/api/params"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
)

const (
	overheadBaseConfidence     = 40
	measuredValidationBonus    = 25
	defaultValidationBonus     = 10
	measuredPostOpBonus        = 15
	defaultPostOpBonus         = 5
	profileConfidenceDivisor   = 5
	fallbackOverheadConfidence = constants.FallbackConfidence
	stabilityConfidenceDivisor = 4
	efficiencyScoreScale       = 100.0
	maxScore                   = 100.0
)

// PaymasterCostService turns a paymaster classification into an overhead
// estimate and a cost report
type PaymasterCostService struct {
	oracle     interfaces.ChainOracle
	estimator  interfaces.GasEstimator
	classifier interfaces.PaymasterClassifier
	tables     CostTables
	entryPoint common.Address
	cache      *ttlCache[*business.CostBreakdown]
	logger     *zap.Logger
	now        func() time.Time

	fallbacks metrics.Counter
}

// NewPaymasterCostService creates a new cost model. The estimator is used for
// measured validation and postOp figures and may be nil.
func NewPaymasterCostService(
	oracle interfaces.ChainOracle,
	estimator interfaces.GasEstimator,
	classifier interfaces.PaymasterClassifier,
	tables CostTables,
	cacheOpts CacheOptions,
	registry metrics.Registry,
) *PaymasterCostService {
	registry = resolveRegistry(registry)
	if tables.TypeDefaults == nil {
		tables = DefaultCostTables()
	}
	if tables.DefaultGasPriceWei == nil {
		tables.DefaultGasPriceWei = big.NewInt(constants.DefaultGasPriceWei)
	}
	return &PaymasterCostService{
		oracle:     oracle,
		estimator:  estimator,
		classifier: classifier,
		tables:     tables,
		entryPoint: common.HexToAddress(constants.EntryPointV06Address),
		cache:      newTTLCache[*business.CostBreakdown]("cost_model", cacheOpts, registry),
		logger:     logger.ForComponent(logger.Log, logger.ComponentCostModel),
		now:        time.Now,
		fallbacks:  newCounter(registry, metricOverheadFallback),
	}
}

// SetEntryPoint overrides the EntryPoint used as caller for measured simulations
func (s *PaymasterCostService) SetEntryPoint(entryPoint common.Address) {
	s.entryPoint = entryPoint
}

// Tables returns the cost tables in use
func (s *PaymasterCostService) Tables() CostTables {
	return s.tables
}

// ClearCache drops every cached overhead
func (s *PaymasterCostService) ClearCache() {
	s.cache.Purge()
}

// CacheStats reports overhead cache performance
func (s *PaymasterCostService) CacheStats() business.CacheStats {
	return s.cache.Stats()
}

// ComputeOverhead estimates the gas a paymaster adds to req. It never fails:
// any internal problem yields the fallback breakdown.
func (s *PaymasterCostService) ComputeOverhead(ctx context.Context, profile *business.PaymasterProfile, req business.EstimationRequest) *business.CostBreakdown {
	if profile == nil {
		return s.fallbackBreakdown(common.Address{}, "missing paymaster profile")
	}
	if profile.IsUnknown() && profile.Error != "" {
		return s.fallbackBreakdown(profile.Address, fmt.Sprintf("classification failed: %s", profile.Error))
	}

	cacheKey := helpers.CanonicalKey(profile.Address.Hex(), req.Target.Hex(), hex.EncodeToString(req.Selector()))
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.Clone()
	}

	code, err := s.oracle.GetCode(ctx, profile.Address)
	if err != nil {
		return s.fallbackBreakdown(profile.Address, fmt.Sprintf("failed to get code: %v", err))
	}
	if len(code) == 0 {
		return s.fallbackBreakdown(profile.Address, business.ErrNoCode.Error())
	}

	defaults := s.tables.typeDefaults(profile.PrimaryType)
	breakdown := &business.CostBreakdown{
		Base:         s.tables.BaseOverhead,
		Complexity:   s.tables.bytecodeComplexity(code),
		TypeSpecific: defaults.Addend,
		Multiplier:   s.tables.multiplier(profile.GasComplexity),
	}

	validationSource, postOpSource := constants.SourceDefault, constants.SourceDefault
	breakdown.Validation = defaults.Validation
	if data, err := encodeValidatePaymasterUserOp(profile.Address, req); err != nil {
		s.logger.Debug("failed to encode validatePaymasterUserOp", zap.Error(err))
	} else if gas, ok := s.measure(ctx, profile.Address, data); ok {
		breakdown.Validation = gas
		breakdown.MeasuredValidation = true
		validationSource = constants.SourceMeasured
	}
	breakdown.PostOp = defaults.PostOp
	if data, err := encodePostOp(); err != nil {
		s.logger.Debug("failed to encode postOp", zap.Error(err))
	} else if gas, ok := s.measure(ctx, profile.Address, data); ok {
		breakdown.PostOp = gas
		breakdown.MeasuredPostOp = true
		postOpSource = constants.SourceMeasured
	}

	for _, feature := range profile.Features {
		breakdown.Storage += s.tables.StorageIncrements[feature]
		breakdown.FeatureSpecific += s.tables.FeatureAddends[feature]
	}

	unscaled := breakdown.Complexity + breakdown.TypeSpecific + breakdown.FeatureSpecific
	fixed := breakdown.Base + breakdown.Validation + breakdown.PostOp + breakdown.Storage
	breakdown.TotalOverhead = helpers.CeilGas(float64(fixed) + float64(unscaled)*breakdown.Multiplier)
	if breakdown.TotalOverhead < breakdown.Base {
		breakdown.TotalOverhead = breakdown.Base
	}

	// Components sum to TotalOverhead; the scaled share folds complexity, type and feature gas
	breakdown.Components = []business.CostComponent{
		{Name: "base", Gas: breakdown.Base, Source: constants.SourceConstant, Description: "EntryPoint paymaster handling"},
		{Name: "validation", Gas: breakdown.Validation, Source: validationSource, Description: "validatePaymasterUserOp execution"},
		{Name: "post_op", Gas: breakdown.PostOp, Source: postOpSource, Description: "postOp execution"},
		{Name: "storage", Gas: breakdown.Storage, Source: constants.SourceDerived, Description: "storage writes implied by features"},
		{
			Name:   "scaled_complexity",
			Gas:    breakdown.TotalOverhead - fixed,
			Source: constants.SourceDerived,
			Description: fmt.Sprintf("(complexity %d + %s addend %d + features %d) x %.2f",
				breakdown.Complexity, profile.PrimaryType, breakdown.TypeSpecific, breakdown.FeatureSpecific, breakdown.Multiplier),
		},
	}

	confidence := overheadBaseConfidence + profile.Confidence/profileConfidenceDivisor
	if breakdown.MeasuredValidation {
		confidence += measuredValidationBonus
	} else {
		confidence += defaultValidationBonus
	}
	if breakdown.MeasuredPostOp {
		confidence += measuredPostOpBonus
	} else {
		confidence += defaultPostOpBonus
	}
	breakdown.Confidence = helpers.ClampConfidence(confidence)

	s.cache.Set(cacheKey, breakdown.Clone())

	s.logger.Debug("computed paymaster overhead",
		zap.String("paymaster", profile.Address.Hex()),
		zap.String("primary_type", string(profile.PrimaryType)),
		zap.Uint64("total_overhead", breakdown.TotalOverhead),
		zap.Bool("measured_validation", breakdown.MeasuredValidation),
		zap.Bool("measured_post_op", breakdown.MeasuredPostOp))

	return breakdown
}

// measure simulates a paymaster entry point called by the EntryPoint and
// returns the execution gas above the intrinsic cost
func (s *PaymasterCostService) measure(ctx context.Context, paymaster common.Address, data []byte) (uint64, bool) {
	if s.estimator == nil {
		return 0, false
	}

	result, simErr := s.estimator.Simulate(ctx, business.EstimationRequest{
		Target:          paymaster,
		From:            s.entryPoint,
		Data:            data,
		Mode:            constants.ModeAuto,
		UseCache:        false,
		FallbackOnError: true,
	})
	if simErr != nil || result == nil || !result.Success || result.Fallback {
		return 0, false
	}
	if result.GasUsed <= constants.TxGas {
		return 0, false
	}
	return result.GasUsed - constants.TxGas, true
}

func (s *PaymasterCostService) fallbackBreakdown(address common.Address, reason string) *business.CostBreakdown {
	s.fallbacks.Inc(1)
	s.logger.Warn("using fallback paymaster overhead",
		zap.String("paymaster", address.Hex()),
		zap.String("reason", reason))

	return &business.CostBreakdown{
		Base:       s.tables.BaseOverhead,
		Multiplier: 1.0,
		Components: []business.CostComponent{{
			Name:        "fallback",
			Gas:         s.tables.FallbackOverhead,
			Source:      constants.SourceDefault,
			Description: "conservative overhead used when the paymaster cannot be modelled",
		}},
		TotalOverhead: s.tables.FallbackOverhead,
		Confidence:    fallbackOverheadConfidence,
		Fallback:      true,
		Error:         reason,
	}
}

// AnalyzeCosts classifies the paymaster, models its overhead and derives scores,
// recommendations and growth scenarios
func (s *PaymasterCostService) AnalyzeCosts(ctx context.Context, p params.AnalyzeCostsParams) (*business.CostReport, error) {
	if helpers.IsZeroAddress(p.Address) {
		return nil, business.NewValidationError("address", "paymaster address must not be zero")
	}
	if len(p.SampleData) > 0 && len(p.SampleData) < 4 {
		return nil, business.NewValidationError("sample_data", "calldata must start with a 4-byte selector")
	}
	if p.TimeframeDays <= 0 {
		p.TimeframeDays = constants.DefaultTimeframeDays
	}
	if p.DailyTxVolume <= 0 {
		p.DailyTxVolume = constants.DefaultDailyTxVolume
	}
	target := p.SampleTarget
	if helpers.IsZeroAddress(target) {
		target = p.Address
	}

	profile := s.classifier.Classify(ctx, p.Address)
	address := p.Address
	breakdown := s.ComputeOverhead(ctx, profile, business.EstimationRequest{
		Target:           target,
		Data:             p.SampleData,
		Mode:             constants.ModePaymaster,
		PaymasterAddress: &address,
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cost analysis cancelled: %w", err)
	}

	gasPrice, fromOracle := s.resolveGasPrice(ctx, p.GasPriceWei)
	costWei := helpers.GasCostWei(breakdown.TotalOverhead, gasPrice)
	costToken := helpers.WeiToToken(costWei)
	benchmark := s.tables.benchmark(profile.PrimaryType)

	costMetrics := business.CostMetrics{
		OverheadGas:        breakdown.TotalOverhead,
		BenchmarkGas:       benchmark,
		GasPriceWei:        gasPrice,
		OverheadCostWei:    costWei,
		OverheadCostToken:  costToken,
		DailyCostToken:     costToken * float64(p.DailyTxVolume),
		EfficiencyScore:    s.efficiencyScore(benchmark, breakdown.TotalOverhead),
		StabilityScore:     s.stabilityScore(profile, breakdown),
		ScalabilityScore:   s.scalabilityScore(profile, breakdown),
		GasPriceFromOracle: fromOracle,
	}

	report := &business.CostReport{
		Address:         p.Address,
		PrimaryType:     profile.PrimaryType,
		Profile:         profile,
		Breakdown:       breakdown,
		Metrics:         costMetrics,
		Recommendations: s.recommendations(profile, breakdown, costMetrics),
		Scenarios:       s.scenarios(costToken, p.DailyTxVolume, p.TimeframeDays),
		GeneratedAt:     s.now(),
	}

	s.logger.Info("analyzed paymaster costs",
		zap.String("paymaster", p.Address.Hex()),
		zap.String("primary_type", string(profile.PrimaryType)),
		zap.Uint64("overhead_gas", breakdown.TotalOverhead),
		zap.Int("efficiency_score", costMetrics.EfficiencyScore))

	return report, nil
}

// ComparePaymasters analyses each paymaster and ranks them by efficiency,
// cheapest overhead first on ties
func (s *PaymasterCostService) ComparePaymasters(ctx context.Context, addresses []common.Address, p params.AnalyzeCostsParams) ([]*business.CostReport, error) {
	if len(addresses) == 0 {
		return nil, business.NewValidationError("addresses", "at least one paymaster is required")
	}

	reports := make([]*business.CostReport, 0, len(addresses))
	for _, address := range addresses {
		p.Address = address
		report, err := s.AnalyzeCosts(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze paymaster %s: %w", address.Hex(), err)
		}
		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Metrics.EfficiencyScore != reports[j].Metrics.EfficiencyScore {
			return reports[i].Metrics.EfficiencyScore > reports[j].Metrics.EfficiencyScore
		}
		return reports[i].Metrics.OverheadGas < reports[j].Metrics.OverheadGas
	})
	return reports, nil
}

// resolveGasPrice prefers the caller's price, then the oracle, then the table default
func (s *PaymasterCostService) resolveGasPrice(ctx context.Context, override *big.Int) (*big.Int, bool) {
	if override != nil && override.Sign() > 0 {
		return new(big.Int).Set(override), false
	}
	fees, err := s.oracle.GetFeeData(ctx)
	if err == nil && fees != nil {
		if price := fees.EffectiveGasPrice(); price != nil && price.Sign() > 0 {
			return price, true
		}
	}
	if err != nil {
		s.logger.Debug("fee data unavailable, using default gas price", zap.Error(err))
	}
	return new(big.Int).Set(s.tables.DefaultGasPriceWei), false
}

func (s *PaymasterCostService) efficiencyScore(benchmark, overhead uint64) int {
	if overhead == 0 {
		return int(maxScore)
	}
	return helpers.ClampScore(efficiencyScoreScale * float64(benchmark) / float64(overhead))
}

func (s *PaymasterCostService) stabilityScore(profile *business.PaymasterProfile, breakdown *business.CostBreakdown) int {
	score := maxScore
	for _, dependency := range s.tables.ExternalDependencies {
		if profile.HasFeature(dependency) {
			score -= s.tables.DependencyPenalty
		}
	}
	if breakdown.Fallback {
		score -= s.tables.FallbackPenalty
	}
	score -= float64(100-breakdown.Confidence) / stabilityConfidenceDivisor
	return helpers.ClampScore(score)
}

func (s *PaymasterCostService) scalabilityScore(profile *business.PaymasterProfile, breakdown *business.CostBreakdown) int {
	score := maxScore
	if s.tables.StoragePenaltyDivisor > 0 {
		score -= float64(breakdown.Storage) / s.tables.StoragePenaltyDivisor
	}
	score -= s.tables.ComplexityPenalties[profile.GasComplexity]
	return helpers.ClampScore(score)
}

func (s *PaymasterCostService) recommendations(profile *business.PaymasterProfile, breakdown *business.CostBreakdown, m business.CostMetrics) []business.Recommendation {
	var recs []business.Recommendation
	add := func(category, priority, format string, args ...interface{}) {
		recs = append(recs, business.Recommendation{
			Category: category,
			Priority: priority,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if breakdown.Fallback {
		add("accuracy", constants.PriorityHigh,
			"Overhead is a conservative fallback (%s); verify with a measured simulation once the paymaster is reachable", breakdown.Error)
	}
	if breakdown.TotalOverhead > s.tables.HighOverheadThreshold {
		add("validation", constants.PriorityHigh,
			"Reduce validation complexity: overhead of %d gas exceeds %d", breakdown.TotalOverhead, s.tables.HighOverheadThreshold)
	}
	if breakdown.Storage > s.tables.HighStorageThreshold {
		add("storage", constants.PriorityMedium,
			"Pack storage writes: features imply %d gas of storage updates per operation", breakdown.Storage)
	}
	if m.EfficiencyScore < s.tables.LowEfficiencyThreshold {
		add("benchmark", constants.PriorityMedium,
			"Overhead of %d gas is above the typical %d for %s paymasters", m.OverheadGas, m.BenchmarkGas, profile.PrimaryType)
	}
	if profile.Characteristics.RequiresSignature {
		add("signature", constants.PriorityLow,
			"Cache the verifying signer in an immutable to avoid a storage read on every validation")
	}
	if profile.Characteristics.SupportsMultipleTokens || profile.Characteristics.UsesPriceOracle {
		add("pricing", constants.PriorityMedium,
			"Cache token prices instead of querying an oracle on every operation")
	}
	if profile.Confidence < s.tables.LowConfidenceThreshold {
		add("classification", constants.PriorityLow,
			"Classification confidence is %d; expose standard getters such as token() or verifyingSigner() so the paymaster can be identified", profile.Confidence)
	}
	return recs
}

// scenarios projects linear transaction growth over the timeframe
func (s *PaymasterCostService) scenarios(costToken float64, dailyTx, days int) []business.CostScenario {
	out := make([]business.CostScenario, 0, len(s.tables.Scenarios))
	for _, definition := range s.tables.Scenarios {
		projectedDaily := float64(dailyTx) * (1 + definition.GrowthPercent/100)
		out = append(out, business.CostScenario{
			Name:               definition.Name,
			GrowthPercent:      definition.GrowthPercent,
			TimeframeDays:      days,
			ProjectedDailyTx:   projectedDaily,
			ProjectedCostToken: costToken * projectedDaily * float64(days),
		})
	}
	return out
}
