package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/mocks"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/services"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/api/params"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBatchProfilingService_ProfileAll(t *testing.T) {
	ctx := context.Background()

	t.Run("results keep request order and failures stay isolated", func(t *testing.T) {
		profiler := mocks.NewMockFunctionProfilerForTest(t)
		profiler.EXPECT().ProfileFunction(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, p params.ProfileFunctionParams) (*business.FunctionProfile, error) {
				// later requests finish first
				time.Sleep(time.Duration(4-p.RunCount) * 5 * time.Millisecond)
				if p.Function == "burn(uint256)" {
					return nil, errors.New("profiling burn(uint256) failed at run 1 of 2: execution reverted")
				}
				return &business.FunctionProfile{Function: p.Function, Stats: business.AggregatedStats{CallCount: p.RunCount}}, nil
			}).Times(3)

		requests := []params.ProfileFunctionParams{
			{Target: testTarget, Function: "mint(uint256)", RunCount: 1},
			{Target: testTarget, Function: "burn(uint256)", RunCount: 2},
			{Target: testTarget, Function: "transfer(address,uint256)", RunCount: 3},
		}

		service := services.NewBatchProfilingService(profiler, 3)
		results := service.ProfileAll(ctx, requests)
		require.Len(t, results, 3)

		assert.NoError(t, results[0].Err)
		assert.Equal(t, "mint(uint256)", results[0].Profile.Function)

		assert.Error(t, results[1].Err)
		assert.Nil(t, results[1].Profile)
		assert.Equal(t, "burn(uint256)", results[1].Params.Function)

		assert.NoError(t, results[2].Err)
		assert.Equal(t, 3, results[2].Profile.Stats.CallCount)
	})

	t.Run("parallelism is bounded", func(t *testing.T) {
		var active, peak int32
		profiler := mocks.NewMockFunctionProfilerForTest(t)
		profiler.EXPECT().ProfileFunction(ctx, gomock.Any()).DoAndReturn(
			func(context.Context, params.ProfileFunctionParams) (*business.FunctionProfile, error) {
				current := atomic.AddInt32(&active, 1)
				for {
					observed := atomic.LoadInt32(&peak)
					if current <= observed || atomic.CompareAndSwapInt32(&peak, observed, current) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return &business.FunctionProfile{}, nil
			}).Times(6)

		requests := make([]params.ProfileFunctionParams, 6)
		for i := range requests {
			requests[i] = params.ProfileFunctionParams{Target: testTarget, Function: "mint(uint256)", RunCount: 1}
		}

		service := services.NewBatchProfilingService(profiler, 2)
		results := service.ProfileAll(ctx, requests)
		assert.Len(t, results, 6)
		assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	})

	t.Run("empty batch", func(t *testing.T) {
		service := services.NewBatchProfilingService(mocks.NewMockFunctionProfilerForTest(t), 0)
		assert.Empty(t, service.ProfileAll(ctx, nil))
	})
}
