package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (*zapLogger, *observer.ObservedLogs) {
	lvl := zap.NewAtomicLevelAt(level)
	core, logs := observer.New(&lvl)
	return &zapLogger{z: zap.New(core), lvl: &lvl}, logs
}

func TestSetLevelAdjustsRuntimeSeverity(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.ErrorLevel)

	logger.Info("suppressed at error level")
	assert.Equal(t, 0, logs.Len())

	var setter LevelSetter = logger
	setter.SetLevel("debug")

	logger.Info("emitted after reload")
	logger.Debug("debug emitted after reload")
	assert.Equal(t, 2, logs.Len())
}

func TestSetLevelSharedWithChildren(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.InfoLevel)
	child := logger.With(String("component", "cache")).Named("cache")

	child.Debug("suppressed")
	assert.Equal(t, 0, logs.Len())

	logger.SetLevel("debug")

	child.Debug("emitted")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "cache", entry.LoggerName)
	assert.Equal(t, "cache", entry.ContextMap()["component"])
}

func TestSetLevelUnknownValueDefaultsToInfo(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.ErrorLevel)

	logger.SetLevel("nonsense")

	logger.Debug("still suppressed")
	logger.Info("emitted")
	assert.Equal(t, 1, logs.Len())
}

func TestSetLevelNoOpWithoutAtomicLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewLoggerFromCore(core)

	setter, ok := logger.(LevelSetter)
	require.True(t, ok)
	assert.NotPanics(t, func() { setter.SetLevel("debug") })

	logger.Debug("still suppressed")
	assert.Equal(t, 0, logs.Len())
}

func TestNewLoggerRespectsConfiguredLevel(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "warn"})
	require.NoError(t, err)

	zl, ok := logger.(*zapLogger)
	require.True(t, ok)
	require.NotNil(t, zl.lvl)
	assert.False(t, zl.lvl.Enabled(zapcore.InfoLevel))
	assert.True(t, zl.lvl.Enabled(zapcore.WarnLevel))
}
