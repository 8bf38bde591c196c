package services

import (
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/helpers"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/ethereum/go-ethereum/common"
)

// PaymasterSignal is one piece of evidence the classifier evaluates.
// A signal with an empty ProbeSignature is pattern-only; an empty Archetype
// contributes a feature without voting for a primary type.
type PaymasterSignal struct {
	Name           string
	Archetype      constants.PaymasterType
	ProbeSignature string
	ProbeArgs      []byte
	Patterns       []string
	Feature        string
	Characteristic func(*business.PaymasterCharacteristics)
}

// featureWeights drive the gas complexity bucket; unlisted features weigh 1
var featureWeights = map[string]int{
	constants.FeatureTokenPayment:          2,
	constants.FeatureSignatureVerification: 2,
	constants.FeatureStakingLedger:         2,
	constants.FeatureMultiToken:            2,
	constants.FeaturePriceOracle:           2,
}

// DefaultPaymasterSignals returns the standard ordered signal list
func DefaultPaymasterSignals() []PaymasterSignal {
	zeroAddressArg := helpers.EncodeAddressArg(common.Address{})

	return []PaymasterSignal{
		{
			Name:           "token_getter",
			Archetype:      constants.PaymasterToken,
			ProbeSignature: "token()",
			Patterns:       []string{"erc20", "transferfrom", "token not supported"},
			Feature:        constants.FeatureTokenPayment,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.IsTokenBased = true },
		},
		{
			Name:           "verifying_signer",
			Archetype:      constants.PaymasterVerifying,
			ProbeSignature: "verifyingSigner()",
			Patterns:       []string{"verifyingsigner", "invalid signature", "ecdsa"},
			Feature:        constants.FeatureSignatureVerification,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.RequiresSignature = true },
		},
		{
			Name:           "staking_token",
			Archetype:      constants.PaymasterStaking,
			ProbeSignature: "stakingToken()",
			Patterns:       []string{"staking", "insufficient stake"},
			Feature:        constants.FeatureStakingLedger,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.HasStaking = true },
		},
		{
			Name:           "whitelist",
			Archetype:      constants.PaymasterConditional,
			ProbeSignature: "isWhitelisted(address)",
			ProbeArgs:      zeroAddressArg,
			Patterns:       []string{"whitelist", "allowlist"},
			Feature:        constants.FeatureWhitelist,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.HasWhitelist = true },
		},
		{
			Name:           "validity_window",
			Archetype:      constants.PaymasterConditional,
			ProbeSignature: "validUntil()",
			Patterns:       []string{"validuntil", "validafter", "timestamp", "expired"},
			Feature:        constants.FeatureTimeWindow,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.HasTimeConditions = true },
		},
		{
			Name:           "accepted_tokens",
			Archetype:      constants.PaymasterToken,
			ProbeSignature: "acceptedTokens(uint256)",
			ProbeArgs:      helpers.EncodeUintArg(0),
			Patterns:       []string{"acceptedtoken", "supportedtoken"},
			Feature:        constants.FeatureMultiToken,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.SupportsMultipleTokens = true },
		},
		{
			Name:           "deposit_ledger",
			Archetype:      constants.PaymasterDeposit,
			ProbeSignature: "deposits(address)",
			ProbeArgs:      zeroAddressArg,
			Patterns:       []string{"depositfor", "insufficient deposit"},
			Feature:        constants.FeatureDepositTracking,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.HasDepositTracking = true },
		},
		// getDeposit() exists on every BasePaymaster: feature only, no type vote
		{
			Name:           "entry_point_deposit",
			ProbeSignature: "getDeposit()",
			Feature:        constants.FeatureDepositTracking,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.HasDepositTracking = true },
		},
		{
			Name:           "rate_limit",
			Patterns:       []string{"rate limit", "ratelimit", "cooldown"},
			Feature:        constants.FeatureRateLimiting,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.HasRateLimiting = true },
		},
		{
			Name:           "price_oracle",
			Patterns:       []string{"oracle", "pricefeed", "latestrounddata", "stale price"},
			Feature:        constants.FeaturePriceOracle,
			Characteristic: func(c *business.PaymasterCharacteristics) { c.UsesPriceOracle = true },
		},
	}
}
