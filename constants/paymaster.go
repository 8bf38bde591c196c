package constants

// PaymasterType is the primary archetype of a sponsor contract.
type PaymasterType string

const (
	PaymasterSponsorship PaymasterType = "sponsorship"
	PaymasterToken       PaymasterType = "token"
	PaymasterVerifying   PaymasterType = "verifying"
	PaymasterStaking     PaymasterType = "staking"
	PaymasterConditional PaymasterType = "conditional"
	PaymasterDeposit     PaymasterType = "deposit"
	PaymasterUnknown     PaymasterType = "unknown"
)

// PrimaryTypePriority is the resolution order when several archetypes are detected.
var PrimaryTypePriority = []PaymasterType{
	PaymasterToken,
	PaymasterVerifying,
	PaymasterStaking,
	PaymasterConditional,
	PaymasterDeposit,
}

// GasComplexity buckets a paymaster's expected validation cost.
type GasComplexity string

const (
	ComplexityLow    GasComplexity = "low"
	ComplexityMedium GasComplexity = "medium"
	ComplexityHigh   GasComplexity = "high"
)

// Capability tags reported in PaymasterProfile.Features
const (
	FeatureTokenPayment          = "token_payment"
	FeatureSignatureVerification = "signature_verification"
	FeatureStakingLedger         = "staking_ledger"
	FeatureWhitelist             = "whitelist"
	FeatureTimeWindow            = "time_window"
	FeatureMultiToken            = "multi_token"
	FeatureDepositTracking       = "deposit_tracking"
	FeatureRateLimiting          = "rate_limiting"
	FeaturePriceOracle           = "price_oracle"
)

// Cost component sources
const (
	SourceConstant = "constant"
	SourceMeasured = "measured"
	SourceDefault  = "default"
	SourceDerived  = "derived"
)

// Recommendation priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ERC-4337 v0.6 paymaster entry points
const (
	ValidatePaymasterUserOpSignature = "validatePaymasterUserOp((address,uint256,bytes,bytes,uint256,uint256,uint256,uint256,uint256,bytes,bytes),bytes32,uint256)"
	PostOpSignature                  = "postOp(uint8,bytes,uint256)"

	// SubTypeERC4337 tags paymasters whose dispatch table exposes validatePaymasterUserOp
	SubTypeERC4337 = "erc4337_v06"
)
