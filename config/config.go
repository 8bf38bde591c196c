package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"strings"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/client/chain"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/helpers"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key
const EnvPrefix = "GAS_PROFILER"

// DefaultEnvFile is read when Load is called without explicit files
const DefaultEnvFile = ".env"

// Config is the runtime configuration of the profiler
type Config struct {
	Stage    string
	LogLevel string

	RPCURL         string
	ChainID        int64
	PrivateKey     string
	RPCRate        float64
	RPCBurst       int
	RequestTimeout time.Duration

	CacheTTL           time.Duration
	CacheSize          int
	RunDelay           time.Duration
	MaxParallel        int
	DefaultGasPriceWei *big.Int
	EntryPoint         common.Address

	// MissingEnvFiles lists env files that were requested but not found
	MissingEnvFiles []string
}

// Load reads .env files then the environment. Environment variables win
// over file values, which win over defaults. Missing files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	for _, file := range envFiles {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			cfg.MissingEnvFiles = append(cfg.MissingEnvFiles, file)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for key, value := range values {
			name, ok := strings.CutPrefix(key, EnvPrefix+"_")
			if !ok {
				continue
			}
			v.SetDefault(name, value)
		}
	}

	gasPrice, ok := new(big.Int).SetString(v.GetString(constants.EnvGasPriceWei), 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s_%s: %q is not an integer", EnvPrefix, constants.EnvGasPriceWei, v.GetString(constants.EnvGasPriceWei))
	}

	cfg.Stage = v.GetString(constants.EnvStage)
	cfg.LogLevel = v.GetString(constants.EnvLogLevel)
	cfg.RPCURL = v.GetString(constants.EnvRPCURL)
	cfg.ChainID = v.GetInt64(constants.EnvChainID)
	cfg.PrivateKey = v.GetString(constants.EnvPrivateKey)
	cfg.RPCRate = v.GetFloat64(constants.EnvRPCRate)
	cfg.RPCBurst = v.GetInt(constants.EnvRPCBurst)
	cfg.RequestTimeout = v.GetDuration(constants.EnvRequestTimeout)
	cfg.CacheTTL = v.GetDuration(constants.EnvCacheTTL)
	cfg.CacheSize = v.GetInt(constants.EnvCacheSize)
	cfg.RunDelay = v.GetDuration(constants.EnvRunDelay)
	cfg.MaxParallel = v.GetInt(constants.EnvMaxParallel)
	cfg.DefaultGasPriceWei = gasPrice

	entryPoint := v.GetString(constants.EnvEntryPoint)
	if !helpers.IsAddressValid(entryPoint) {
		return nil, fmt.Errorf("invalid %s_%s: %q is not an address", EnvPrefix, constants.EnvEntryPoint, entryPoint)
	}
	cfg.EntryPoint = common.HexToAddress(entryPoint)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.EnvStage, "local")
	v.SetDefault(constants.EnvLogLevel, "info")
	v.SetDefault(constants.EnvRPCURL, constants.DefaultRPCURL)
	v.SetDefault(constants.EnvChainID, constants.DefaultChainID)
	v.SetDefault(constants.EnvPrivateKey, "")
	v.SetDefault(constants.EnvRPCRate, constants.DefaultRPCRate)
	v.SetDefault(constants.EnvRPCBurst, constants.DefaultRPCBurst)
	v.SetDefault(constants.EnvRequestTimeout, 30*time.Second)
	v.SetDefault(constants.EnvCacheTTL, constants.DefaultCacheTTL)
	v.SetDefault(constants.EnvCacheSize, constants.DefaultCacheSize)
	v.SetDefault(constants.EnvRunDelay, constants.DefaultRunDelay)
	v.SetDefault(constants.EnvMaxParallel, constants.DefaultMaxParallel)
	v.SetDefault(constants.EnvGasPriceWei, fmt.Sprintf("%d", constants.DefaultGasPriceWei))
	v.SetDefault(constants.EnvEntryPoint, constants.EntryPointV06Address)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("%s_%s is required", EnvPrefix, constants.EnvRPCURL)
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("%s_%s must be positive", EnvPrefix, constants.EnvChainID)
	}
	if c.PrivateKey != "" && !helpers.IsPrivateKeyValid(c.PrivateKey) {
		return fmt.Errorf("%s_%s must be a 32-byte hex key", EnvPrefix, constants.EnvPrivateKey)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("%s_%s must be positive", EnvPrefix, constants.EnvCacheSize)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("%s_%s must be positive", EnvPrefix, constants.EnvCacheTTL)
	}
	if c.RunDelay < 0 {
		return fmt.Errorf("%s_%s must not be negative", EnvPrefix, constants.EnvRunDelay)
	}
	if c.RPCRate <= 0 || c.RPCBurst <= 0 {
		return fmt.Errorf("%s_%s and %s_%s must be positive", EnvPrefix, constants.EnvRPCRate, EnvPrefix, constants.EnvRPCBurst)
	}
	if c.MaxParallel <= 0 {
		return fmt.Errorf("%s_%s must be positive", EnvPrefix, constants.EnvMaxParallel)
	}
	if c.DefaultGasPriceWei.Sign() <= 0 {
		return fmt.Errorf("%s_%s must be positive", EnvPrefix, constants.EnvGasPriceWei)
	}
	return nil
}

// ChainConfig returns the chain client settings
func (c *Config) ChainConfig() chain.Config {
	return chain.Config{
		RPCURL:       c.RPCURL,
		ChainID:      c.ChainID,
		PrivateKey:   c.PrivateKey,
		RateLimit:    c.RPCRate,
		RateBurst:    c.RPCBurst,
		DialAttempts: constants.DefaultDialAttempts,
	}
}
