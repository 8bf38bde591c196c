package services

import (
	"math/big"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/helpers"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
)

// statsAccumulator keeps running min/max/total figures; averages are only
// computed by finalize
type statsAccumulator struct {
	gasMin, gasMax, gasTotal uint64
	count                    int

	costMin, costMax, costTotal float64
	costWei                     *big.Int
	costCount                   int
}

func newStatsAccumulator() *statsAccumulator {
	return &statsAccumulator{costWei: new(big.Int)}
}

func (a *statsAccumulator) add(run business.ProfilingRun) {
	if a.count == 0 || run.GasUsed < a.gasMin {
		a.gasMin = run.GasUsed
	}
	if run.GasUsed > a.gasMax {
		a.gasMax = run.GasUsed
	}
	a.gasTotal += run.GasUsed
	a.count++

	if run.CostToken == nil {
		return
	}
	cost := *run.CostToken
	if a.costCount == 0 || cost < a.costMin {
		a.costMin = cost
	}
	if cost > a.costMax {
		a.costMax = cost
	}
	a.costTotal += cost
	if run.CostWei != nil {
		a.costWei.Add(a.costWei, run.CostWei)
	}
	a.costCount++
}

func (a *statsAccumulator) finalize() business.AggregatedStats {
	stats := business.AggregatedStats{
		Min:       a.gasMin,
		Max:       a.gasMax,
		Avg:       helpers.RoundDiv(a.gasTotal, uint64(a.count)),
		Total:     a.gasTotal,
		CallCount: a.count,
	}
	if a.costCount > 0 {
		stats.Cost = &business.CostStats{
			Min:      a.costMin,
			Max:      a.costMax,
			Avg:      a.costTotal / float64(a.costCount),
			Total:    a.costTotal,
			TotalWei: new(big.Int).Set(a.costWei),
			Count:    a.costCount,
		}
	}
	return stats
}
