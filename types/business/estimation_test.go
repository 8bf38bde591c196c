package business_test

import (
	"testing"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimationResult_Clone(t *testing.T) {
	t.Run("nil result", func(t *testing.T) {
		var result *business.EstimationResult
		assert.Nil(t, result.Clone())
	})

	t.Run("copy shares no mutable state", func(t *testing.T) {
		original := &business.EstimationResult{
			Success:      true,
			GasUsed:      80000,
			StrategyUsed: constants.StrategyEstimate,
			Attempts:     []business.StrategyAttempt{{Strategy: constants.StrategyEstimate, Success: true, GasUsed: 50000}},
			PaymasterOverhead: &business.CostBreakdown{
				TotalOverhead: 30000,
				Components:    []business.CostComponent{{Name: "base", Gas: 15000}},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone.PaymasterOverhead)
		assert.NotSame(t, original.PaymasterOverhead, clone.PaymasterOverhead)

		clone.Attempts[0].GasUsed = 1
		clone.PaymasterOverhead.TotalOverhead = 1
		clone.PaymasterOverhead.Components[0].Gas = 1

		assert.Equal(t, uint64(50000), original.Attempts[0].GasUsed)
		assert.Equal(t, uint64(30000), original.PaymasterOverhead.TotalOverhead)
		assert.Equal(t, uint64(15000), original.PaymasterOverhead.Components[0].Gas)
	})

	t.Run("result without paymaster", func(t *testing.T) {
		clone := (&business.EstimationResult{GasUsed: 21000}).Clone()
		assert.Nil(t, clone.PaymasterOverhead)
		assert.Equal(t, uint64(21000), clone.GasUsed)
	})
}
