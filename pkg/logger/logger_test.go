package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_FileSink(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "inventory.log")
	var stdout bytes.Buffer

	log := newLogger(Log{LogLevel: zapcore.InfoLevel, Sink: path}, "test", zapcore.AddSync(&stdout))
	log.Info("item borrowed")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"item borrowed"`)
	require.Contains(t, string(data), `"logger":"test"`)
	require.Empty(t, stdout.String())
}

func TestNewLogger_BadSinkIsReported(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "missing", "inventory.log")
	var stdout bytes.Buffer

	log := newLogger(Log{LogLevel: zapcore.InfoLevel, Sink: path}, "test", zapcore.AddSync(&stdout))
	log.Info("item borrowed")

	out := stdout.String()
	require.Contains(t, out, `"level":"ERROR"`)
	require.Contains(t, out, `"msg":"open log sink, writing to stdout"`)
	require.Contains(t, out, path)
	require.Contains(t, out, `"msg":"item borrowed"`)
}
