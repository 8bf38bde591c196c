package services_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/mocks"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/services"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/api/params"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEngine_ProfilesThroughSharedServices(t *testing.T) {
	ctx := context.Background()
	mockOracle := mocks.NewMockChainOracleForTest(t)
	gomock.InOrder(
		mockOracle.EXPECT().TraceCall(ctx, gomock.Any()).Return(&business.TraceResult{GasUsed: 40000}, nil),
		mockOracle.EXPECT().TraceCall(ctx, gomock.Any()).Return(&business.TraceResult{GasUsed: 42000}, nil),
	)
	mockOracle.EXPECT().GetFeeData(ctx).Return(&business.FeeData{GasPrice: big.NewInt(1_000_000_000)}, nil).Times(2)

	registry := metrics.NewRegistry()
	engine := services.NewEngine(mockOracle, services.EngineConfig{
		Cache:    services.DefaultCacheOptions(),
		Registry: registry,
	})
	require.NotNil(t, engine.Batch)

	profile, err := engine.Profiler.ProfileFunction(ctx, params.ProfileFunctionParams{
		Target:   testTarget,
		Function: "transfer(address,uint256)",
		Args:     make([]byte, 64),
		RunCount: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ProfilingModeSimulation, profile.Mode)
	assert.Equal(t, uint64(41000), profile.Stats.Avg)
	assert.Equal(t, "82000000000000", profile.Stats.Cost.TotalWei.String())

	// profiling bypasses the estimation cache
	assert.Equal(t, 0, engine.Estimator.CacheStats().Entries)
	assert.NotNil(t, registry.Get("profiling/run"))

	engine.ClearCaches()
	assert.Equal(t, 0, engine.Classifier.CacheStats().Entries)
}
