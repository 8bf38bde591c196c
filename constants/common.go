package constants

import "time"

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"
	TestEnvironment = "test"

	// Service name attached to structured logs
	ServiceName = "somnia-gas-profiler"
)

// Network defaults (Somnia testnet)
const (
	DefaultRPCURL      = "https://dream-rpc.somnia.network"
	DefaultChainID     = int64(50312)
	NativeTokenSymbol  = "STT"
	NativeTokenDecimal = 18
)

// Session defaults
const (
	DefaultCacheTTL        = 5 * time.Minute
	DefaultCacheSize       = 1024
	DefaultRunDelay        = 100 * time.Millisecond
	DefaultRPCRate         = 20
	DefaultRPCBurst        = 5
	DefaultMaxParallel     = 4
	DefaultGasPriceWei     = int64(6_000_000_000) // 6 gwei
	DefaultTimeframeDays   = 30
	DefaultDailyTxVolume   = 100
	DefaultReceiptInterval = 500 * time.Millisecond
	DefaultReceiptTimeout  = 2 * time.Minute
	DefaultDialAttempts    = 3
)

// Environment variable keys (prefixed with GAS_PROFILER_ by config)
const (
	EnvStage          = "STAGE"
	EnvLogLevel       = "LOG_LEVEL"
	EnvRPCURL         = "RPC_URL"
	EnvChainID        = "CHAIN_ID"
	EnvPrivateKey     = "PRIVATE_KEY"
	EnvCacheTTL       = "CACHE_TTL"
	EnvCacheSize      = "CACHE_SIZE"
	EnvRunDelay       = "RUN_DELAY"
	EnvRPCRate        = "RPC_RATE"
	EnvRPCBurst       = "RPC_BURST"
	EnvMaxParallel    = "MAX_PARALLEL"
	EnvGasPriceWei    = "DEFAULT_GAS_PRICE_WEI"
	EnvEntryPoint     = "ENTRY_POINT"
	EnvRequestTimeout = "REQUEST_TIMEOUT"
)

// EntryPointV06Address is the canonical ERC-4337 v0.6 EntryPoint deployment.
const EntryPointV06Address = "0x5FF137D4b0FDCD49DcA30c7CF57E578a026d2789"
