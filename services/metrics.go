package services

import (
	"fmt"

	"github.com/rcrowley/go-metrics"
)

// Metric names registered by the services
const (
	metricCacheHits        = "%s/cache/hits"
	metricCacheMisses      = "%s/cache/misses"
	metricStrategyFailures = "estimation/strategy/%s/failures"
	metricFallbacks        = "estimation/fallbacks"
	metricSimulateTimer    = "estimation/simulate"
	metricProbeUnknown     = "classifier/probe/unknown"
	metricOverheadFallback = "cost_model/fallbacks"
	metricProfilingRun     = "profiling/run"
	metricProfilingFailed  = "profiling/failed"
)

// resolveRegistry returns the given registry or a fresh private one
func resolveRegistry(registry metrics.Registry) metrics.Registry {
	if registry == nil {
		return metrics.NewRegistry()
	}
	return registry
}

func newCounter(registry metrics.Registry, format string, args ...interface{}) metrics.Counter {
	return metrics.GetOrRegisterCounter(fmt.Sprintf(format, args...), registry)
}

func newTimer(registry metrics.Registry, name string) metrics.Timer {
	return metrics.GetOrRegisterTimer(name, registry)
}
