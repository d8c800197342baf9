package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/ticket-board/internal/config"
)

func TestNewLogger_Level(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "DEBUG", Service: "ticket-board"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "bogus"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
