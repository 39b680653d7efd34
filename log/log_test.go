package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: int(slog.LevelWarn)}, &buf)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept", slog.String("report", "sales"))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "sales", line["report"])
	assert.Equal(t, "grbpwr-analytics", line["service"])
}

func TestInterceptorLogger(t *testing.T) {
	var buf bytes.Buffer
	l := InterceptorLogger(New(Config{Level: int(slog.LevelDebug)}, &buf))

	l.Log(context.Background(), logging.LevelInfo, "finished call", "grpc.method", "Check")
	assert.Contains(t, buf.String(), `"grpc.method":"Check"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}
