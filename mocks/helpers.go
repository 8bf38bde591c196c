package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockChainOracleForTest creates a new mock ChainOracle for testing
func NewMockChainOracleForTest(t *testing.T) *MockChainOracle {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockChainOracle(ctrl)
}

// NewMockGasEstimatorForTest creates a new mock GasEstimator for testing
func NewMockGasEstimatorForTest(t *testing.T) *MockGasEstimator {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockGasEstimator(ctrl)
}

// NewMockFunctionProfilerForTest creates a new mock FunctionProfiler for testing
func NewMockFunctionProfilerForTest(t *testing.T) *MockFunctionProfiler {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockFunctionProfiler(ctrl)
}
