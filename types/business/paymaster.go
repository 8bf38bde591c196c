package business

import (
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/ethereum/go-ethereum/common"
)

// SignalOutcome is the tri-state result of a single capability probe
type SignalOutcome string

const (
	SignalPresent SignalOutcome = "present"
	SignalAbsent  SignalOutcome = "absent"
	SignalUnknown SignalOutcome = "unknown" // probe could not be answered (connectivity)
)

// PaymasterCharacteristics are boolean feature flags inferred for a paymaster
type PaymasterCharacteristics struct {
	IsTokenBased           bool `json:"is_token_based"`
	RequiresSignature      bool `json:"requires_signature"`
	HasStaking             bool `json:"has_staking"`
	HasWhitelist           bool `json:"has_whitelist"`
	HasTimeConditions      bool `json:"has_time_conditions"`
	HasDepositTracking     bool `json:"has_deposit_tracking"`
	HasRateLimiting        bool `json:"has_rate_limiting"`
	SupportsMultipleTokens bool `json:"supports_multiple_tokens"`
	UsesPriceOracle        bool `json:"uses_price_oracle"`
}

// SignalResult records how one signal evaluated for a paymaster
type SignalResult struct {
	Name          string                  `json:"name"`
	Archetype     constants.PaymasterType `json:"archetype"`
	Probe         SignalOutcome           `json:"probe"`
	PatternMatch  bool                    `json:"pattern_match"`
	SelectorFound bool                    `json:"selector_found"`
}

// Detected reports whether either signal source fired
func (s SignalResult) Detected() bool {
	return s.Probe == SignalPresent || s.PatternMatch || s.SelectorFound
}

// PaymasterProfile is the classification of a sponsor contract
type PaymasterProfile struct {
	Address         common.Address           `json:"address"`
	PrimaryType     constants.PaymasterType  `json:"primary_type"`
	SubTypes        []string                 `json:"sub_types"`
	Characteristics PaymasterCharacteristics `json:"characteristics"`
	Features        []string                 `json:"features"`
	GasComplexity   constants.GasComplexity  `json:"gas_complexity"`
	Confidence      int                      `json:"confidence"`
	BytecodeSize    int                      `json:"bytecode_size"`
	Signals         []SignalResult           `json:"signals,omitempty"`
	Error           string                   `json:"error,omitempty"`
}

// HasFeature reports whether the profile lists the capability tag
func (p *PaymasterProfile) HasFeature(feature string) bool {
	if p == nil {
		return false
	}
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// IsUnknown reports whether classification failed
func (p *PaymasterProfile) IsUnknown() bool {
	return p == nil || p.PrimaryType == constants.PaymasterUnknown
}

// Clone returns a copy that does not share slices with the original
func (p *PaymasterProfile) Clone() *PaymasterProfile {
	if p == nil {
		return nil
	}
	clone := *p
	clone.SubTypes = append([]string(nil), p.SubTypes...)
	clone.Features = append([]string(nil), p.Features...)
	clone.Signals = append([]SignalResult(nil), p.Signals...)
	return &clone
}
