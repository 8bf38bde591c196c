package logger_test

import (
	"testing"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{name: "debug", level: "debug", want: zapcore.DebugLevel},
		{name: "upper case warn", level: "WARN", want: zapcore.WarnLevel},
		{name: "warning alias", level: "warning", want: zapcore.WarnLevel},
		{name: "error", level: "error", want: zapcore.ErrorLevel},
		{name: "unknown defaults to info", level: "verbose", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.level))
		})
	}
}

func TestInitLoggerWithConfig(t *testing.T) {
	logger.InitLoggerWithConfig(logger.LoggerConfig{Level: "debug", Stage: "prod", EnableJSON: true})
	assert.NotNil(t, logger.Log)
	assert.True(t, logger.Log.Core().Enabled(zapcore.DebugLevel))

	logger.InitLoggerWithConfig(logger.LoggerConfig{Level: "error", Stage: "dev"})
	assert.False(t, logger.Log.Core().Enabled(zapcore.InfoLevel))

	child := logger.WithComponent(logger.ComponentEstimator)
	assert.NotNil(t, child)
}
