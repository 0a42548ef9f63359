package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_RotateFileIsJSON(t *testing.T) {
	f := filepath.Join(t.TempDir(), "app.log")
	var stdout bytes.Buffer
	l, cleanup := New(Options{
		Level:   "info",
		Service: "user-api",
		Stdout:  zapcore.AddSync(&stdout),
		Rotate:  FileRotate{Enable: true, Filename: f, MaxSizeMB: 1},
	})
	l.Debug("dropped")
	l.Info("user registered", zap.String("user_id", "u1"))
	cleanup()

	b, err := os.ReadFile(f)
	require.NoError(t, err)
	require.Contains(t, string(b), `"msg":"user registered"`)
	require.Contains(t, string(b), `"user_id":"u1"`)
	require.Contains(t, string(b), `"service":"user-api"`)
	require.NotContains(t, string(b), "dropped")

	// stdout 为 console 格式
	require.Contains(t, stdout.String(), "user registered")
	require.NotContains(t, stdout.String(), `"msg":`)
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	var stdout bytes.Buffer
	l, cleanup := New(Options{Level: "loud", JSON: true, Stdout: zapcore.AddSync(&stdout)})
	l.Debug("dropped")
	l.Info("kept")
	cleanup()
	require.NotContains(t, stdout.String(), "dropped")
	require.Contains(t, stdout.String(), `"msg":"kept"`)
}

func TestNew_CallerPointsAtCallSite(t *testing.T) {
	var stdout bytes.Buffer
	l, cleanup := New(Options{Level: "info", JSON: true, Stdout: zapcore.AddSync(&stdout)})
	l.Info("here")
	cleanup()
	require.Contains(t, stdout.String(), `"caller":"logger/logger_test.go:`)
}

func TestToWriter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	w := ToWriter(zap.New(core), zapcore.InfoLevel)

	n, err := w.Write([]byte("[db] connected\r\n"))
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "[db] connected", logs.All()[0].Message)

	_, err = w.Write([]byte("a\n\nb\n"))
	require.NoError(t, err)
	require.Equal(t, 3, logs.Len())
	require.Equal(t, "b", logs.All()[2].Message)
}

func TestToStdLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	std, err := ToStdLogger(zap.New(core), zapcore.WarnLevel)
	require.NoError(t, err)
	std.Printf("slow sql %dms", 250)
	require.Equal(t, 1, logs.Len())
	require.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}
