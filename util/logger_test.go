package util

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	assert.True(t, NewLogger(io.Discard, true).Core().Enabled(zapcore.DebugLevel), "verbose enables debug")
	assert.False(t, NewLogger(io.Discard, false).Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerSingleLine(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)
	logger.Error("Failed to resize image", zap.String("path", "a.png"))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	assert.Equal(t, "ERROR\tFailed to resize image\t{\"path\": \"a.png\"}\n", buf.String())
}

func TestNewLoggerErrorFieldStaysOnOneLine(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)
	logger.Error("Failed to resize image", zap.Error(errors.New("decode \"a.png\": unexpected EOF")))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), out)
	assert.Contains(t, out, `"error": "decode \"a.png\": unexpected EOF"`)
	assert.Contains(t, out, `"errorVerbose"`)
}
