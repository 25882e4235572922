package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	prod, err := NewLogger(false)
	require.NoError(t, err)
	assert.False(t, prod.Desugar().Core().Enabled(zapcore.DebugLevel))

	dev, err := NewLogger(true)
	require.NoError(t, err)
	assert.True(t, dev.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestOr(t *testing.T) {
	require.NotNil(t, L)
	assert.Same(t, L, Or(nil))

	nop := NewNop()
	assert.Same(t, nop, Or(nop))
	nop.Infow("discarded", "k", "v")
}
