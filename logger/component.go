package logger

import "go.uber.org/zap"

// LogComponent represents different system components for filtering
type LogComponent string

const (
	ComponentEstimator  LogComponent = "estimator"
	ComponentClassifier LogComponent = "classifier"
	ComponentCostModel  LogComponent = "cost_model"
	ComponentProfiler   LogComponent = "profiler"
	ComponentBatch      LogComponent = "batch"
	ComponentChain      LogComponent = "chain_client"
	ComponentCLI        LogComponent = "cli"
)

// WithComponent returns a child of the global logger tagged with the component name.
func WithComponent(component LogComponent) *zap.Logger {
	return Log.With(zap.String("component", string(component)))
}

// ForComponent tags an existing logger, falling back to the global one when nil.
func ForComponent(base *zap.Logger, component LogComponent) *zap.Logger {
	if base == nil {
		return WithComponent(component)
	}
	return base.With(zap.String("component", string(component)))
}
