package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/config"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func writeEnvFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := missingFile(t)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{path}, cfg.MissingEnvFiles)
	assert.Equal(t, constants.DefaultRPCURL, cfg.RPCURL)
	assert.Equal(t, constants.DefaultChainID, cfg.ChainID)
	assert.Equal(t, constants.DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, constants.DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, constants.DefaultRunDelay, cfg.RunDelay)
	assert.Equal(t, constants.DefaultMaxParallel, cfg.MaxParallel)
	assert.Equal(t, "6000000000", cfg.DefaultGasPriceWei.String())
	assert.Equal(t, common.HexToAddress(constants.EntryPointV06Address), cfg.EntryPoint)
	assert.Empty(t, cfg.PrivateKey)

	chainCfg := cfg.ChainConfig()
	assert.Equal(t, cfg.RPCURL, chainCfg.RPCURL)
	assert.Equal(t, float64(constants.DefaultRPCRate), chainCfg.RateLimit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("GAS_PROFILER_RPC_URL", "http://localhost:8545")
		t.Setenv("GAS_PROFILER_CHAIN_ID", "31337")
		t.Setenv("GAS_PROFILER_CACHE_TTL", "90s")
		t.Setenv("GAS_PROFILER_RUN_DELAY", "0s")

		cfg, err := config.Load(missingFile(t))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8545", cfg.RPCURL)
		assert.Equal(t, int64(31337), cfg.ChainID)
		assert.Equal(t, 90*time.Second, cfg.CacheTTL)
		assert.Equal(t, time.Duration(0), cfg.RunDelay)
	})

	t.Run("env file fills values the environment leaves unset", func(t *testing.T) {
		t.Setenv("GAS_PROFILER_CACHE_SIZE", "256")
		path := writeEnvFile(t, "GAS_PROFILER_CACHE_SIZE=64\nGAS_PROFILER_MAX_PARALLEL=8\nUNRELATED=1\n")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.MissingEnvFiles)
		assert.Equal(t, 256, cfg.CacheSize)
		assert.Equal(t, 8, cfg.MaxParallel)
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		value       string
		errorString string
	}{
		{name: "malformed key", key: "GAS_PROFILER_PRIVATE_KEY", value: "0xdeadbeef", errorString: "PRIVATE_KEY"},
		{name: "zero cache size", key: "GAS_PROFILER_CACHE_SIZE", value: "0", errorString: "CACHE_SIZE"},
		{name: "negative run delay", key: "GAS_PROFILER_RUN_DELAY", value: "-1s", errorString: "RUN_DELAY"},
		{name: "non-numeric gas price", key: "GAS_PROFILER_DEFAULT_GAS_PRICE_WEI", value: "six", errorString: "DEFAULT_GAS_PRICE_WEI"},
		{name: "bad entry point", key: "GAS_PROFILER_ENTRY_POINT", value: "0x1234", errorString: "ENTRY_POINT"},
		{name: "zero chain id", key: "GAS_PROFILER_CHAIN_ID", value: "0", errorString: "CHAIN_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := config.Load(missingFile(t))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}
