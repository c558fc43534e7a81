package logger

import (
	"testing"

	"github.com/Brownie44l1/curecorn-api/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	prod, err := NewLogger(&config.Config{Environment: config.EnvProduction})
	require.NoError(t, err)
	require.False(t, prod.Core().Enabled(zapcore.DebugLevel))

	dev, err := NewLogger(&config.Config{Environment: config.EnvDevelopment})
	require.NoError(t, err)
	require.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	example, err := NewLogger(&config.Config{Environment: config.EnvTest})
	require.NoError(t, err)
	require.True(t, example.Core().Enabled(zapcore.DebugLevel))
}
