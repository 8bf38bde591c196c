package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/helpers"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/interfaces"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/logger"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
)

const (
	baseClassificationConfidence = 30
	probeConfirmedConfidence     = 40
	patternOnlyConfidence        = 20
	corroboratingFeatureBonus    = 10
	corroboratingFeatureCap      = 30
	unknownProbePenalty          = 5

	// Bytecode size thresholds that raise the complexity weight
	largeBytecodeSize     = 6000
	veryLargeBytecodeSize = 12000

	minPatternLength = 4
)

// PaymasterClassifierService infers a paymaster's archetype and features from
// read-only probes and bytecode patterns
type PaymasterClassifierService struct {
	oracle  interfaces.ChainOracle
	signals []PaymasterSignal
	cache   *ttlCache[*business.PaymasterProfile]
	logger  *zap.Logger

	unknownProbes metrics.Counter
}

// NewPaymasterClassifierService creates a classifier. A nil signal list uses DefaultPaymasterSignals.
func NewPaymasterClassifierService(oracle interfaces.ChainOracle, signals []PaymasterSignal, cacheOpts CacheOptions, registry metrics.Registry) *PaymasterClassifierService {
	registry = resolveRegistry(registry)
	if signals == nil {
		signals = DefaultPaymasterSignals()
	}
	return &PaymasterClassifierService{
		oracle:        oracle,
		signals:       signals,
		cache:         newTTLCache[*business.PaymasterProfile]("classifier", cacheOpts, registry),
		logger:        logger.ForComponent(logger.Log, logger.ComponentClassifier),
		unknownProbes: newCounter(registry, metricProbeUnknown),
	}
}

// Classify never fails; problems are recorded on the returned profile
func (s *PaymasterClassifierService) Classify(ctx context.Context, address common.Address) *business.PaymasterProfile {
	key := address.Hex()
	if cached, ok := s.cache.Get(key); ok {
		return cached.Clone()
	}

	code, err := s.oracle.GetCode(ctx, address)
	if err != nil {
		s.logger.Warn("failed to fetch paymaster code",
			zap.String("paymaster", address.Hex()),
			zap.Error(err))
		// Not cached so a later call can retry once the oracle is reachable
		return unknownProfile(address, fmt.Sprintf("failed to get code: %v", err))
	}
	if len(code) == 0 {
		profile := unknownProfile(address, business.ErrNoCode.Error())
		s.cache.Set(key, profile.Clone())
		return profile
	}

	profile := s.classifyCode(ctx, address, code)
	s.cache.Set(key, profile.Clone())

	s.logger.Debug("classified paymaster",
		zap.String("paymaster", address.Hex()),
		zap.String("primary_type", string(profile.PrimaryType)),
		zap.Strings("features", profile.Features),
		zap.Int("confidence", profile.Confidence))

	return profile
}

// ClearCache drops every cached profile
func (s *PaymasterClassifierService) ClearCache() {
	s.cache.Purge()
}

// CacheStats reports profile cache performance
func (s *PaymasterClassifierService) CacheStats() business.CacheStats {
	return s.cache.Stats()
}

func unknownProfile(address common.Address, reason string) *business.PaymasterProfile {
	return &business.PaymasterProfile{
		Address:       address,
		PrimaryType:   constants.PaymasterUnknown,
		GasComplexity: constants.ComplexityMedium,
		Error:         reason,
	}
}

func (s *PaymasterClassifierService) classifyCode(ctx context.Context, address common.Address, code []byte) *business.PaymasterProfile {
	text := strings.Join(helpers.PrintableStrings(code, minPatternLength), "\n")

	profile := &business.PaymasterProfile{
		Address:      address,
		BytecodeSize: len(code),
	}

	detected := make(map[constants.PaymasterType]bool)
	probeConfirmed := make(map[constants.PaymasterType]bool)
	featureSource := make(map[string]constants.PaymasterType)

	for _, signal := range s.signals {
		result := s.evaluateSignal(ctx, address, code, text, signal)
		profile.Signals = append(profile.Signals, result)
		if result.Probe == business.SignalUnknown {
			s.unknownProbes.Inc(1)
		}
		if !result.Detected() {
			continue
		}

		if signal.Characteristic != nil {
			signal.Characteristic(&profile.Characteristics)
		}
		if signal.Feature != "" {
			if _, seen := featureSource[signal.Feature]; !seen {
				featureSource[signal.Feature] = signal.Archetype
				profile.Features = append(profile.Features, signal.Feature)
			}
		}
		if signal.Archetype != "" {
			detected[signal.Archetype] = true
			if result.Probe == business.SignalPresent {
				probeConfirmed[signal.Archetype] = true
			}
		}
	}

	profile.PrimaryType = constants.PaymasterSponsorship
	for _, candidate := range constants.PrimaryTypePriority {
		if detected[candidate] {
			profile.PrimaryType = candidate
			break
		}
	}

	for _, candidate := range constants.PrimaryTypePriority {
		if detected[candidate] && candidate != profile.PrimaryType {
			profile.SubTypes = append(profile.SubTypes, string(candidate))
		}
	}
	if helpers.ContainsPush4Selector(code, helpers.FunctionSelector(constants.ValidatePaymasterUserOpSignature)) {
		profile.SubTypes = append(profile.SubTypes, constants.SubTypeERC4337)
	}

	profile.Confidence = s.confidence(profile, probeConfirmed, featureSource)
	profile.GasComplexity = gasComplexity(profile.Features, len(code))
	return profile
}

// evaluateSignal runs the probe and the pattern scan for one signal independently
func (s *PaymasterClassifierService) evaluateSignal(ctx context.Context, address common.Address, code []byte, text string, signal PaymasterSignal) business.SignalResult {
	result := business.SignalResult{
		Name:      signal.Name,
		Archetype: signal.Archetype,
		Probe:     business.SignalAbsent,
	}

	if signal.ProbeSignature != "" {
		selector := helpers.FunctionSelector(signal.ProbeSignature)
		result.SelectorFound = helpers.ContainsPush4Selector(code, selector)
		ret, err := s.oracle.StaticCall(ctx, business.CallRequest{
			To:   address,
			Data: helpers.EncodeCall(selector, signal.ProbeArgs),
		})
		result.Probe = probeOutcome(ret, err)
		if result.Probe == business.SignalUnknown {
			s.logger.Debug("probe could not be answered",
				zap.String("paymaster", address.Hex()),
				zap.String("signal", signal.Name),
				zap.Error(err))
		}
	}

	for _, pattern := range signal.Patterns {
		if strings.Contains(text, pattern) {
			result.PatternMatch = true
			break
		}
	}

	return result
}

// probeOutcome maps a probe call to present, absent or unknown
func probeOutcome(ret []byte, err error) business.SignalOutcome {
	if err != nil {
		if errors.Is(err, business.ErrExecutionReverted) {
			return business.SignalAbsent
		}
		return business.SignalUnknown
	}
	if helpers.IsZeroWord(ret) {
		return business.SignalAbsent
	}
	return business.SignalPresent
}

func (s *PaymasterClassifierService) confidence(profile *business.PaymasterProfile, probeConfirmed map[constants.PaymasterType]bool, featureSource map[string]constants.PaymasterType) int {
	confidence := baseClassificationConfidence

	switch {
	case profile.PrimaryType == constants.PaymasterSponsorship:
	case probeConfirmed[profile.PrimaryType]:
		confidence += probeConfirmedConfidence
	default:
		confidence += patternOnlyConfidence
	}

	corroborating := 0
	for _, feature := range profile.Features {
		if featureSource[feature] != profile.PrimaryType {
			corroborating += corroboratingFeatureBonus
		}
	}
	if corroborating > corroboratingFeatureCap {
		corroborating = corroboratingFeatureCap
	}
	confidence += corroborating

	// Sponsorship is inferred from absence, so any unanswered probe weakens it
	for _, signal := range profile.Signals {
		if signal.Probe != business.SignalUnknown {
			continue
		}
		if profile.PrimaryType == constants.PaymasterSponsorship || signal.Archetype == profile.PrimaryType {
			confidence -= unknownProbePenalty
		}
	}

	return helpers.ClampConfidence(confidence)
}

// gasComplexity buckets the weighted feature count plus a bytecode size bonus
func gasComplexity(features []string, codeSize int) constants.GasComplexity {
	score := 0
	for _, feature := range features {
		if weight, ok := featureWeights[feature]; ok {
			score += weight
		} else {
			score++
		}
	}
	switch {
	case codeSize > veryLargeBytecodeSize:
		score += 2
	case codeSize > largeBytecodeSize:
		score++
	}

	switch {
	case score <= 2:
		return constants.ComplexityLow
	case score <= 5:
		return constants.ComplexityMedium
	default:
		return constants.ComplexityHigh
	}
}
