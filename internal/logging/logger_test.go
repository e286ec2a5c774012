package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/katalvlaran/spdlab/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		format string
		level  string
	}{
		{"JSON Info", "json", "info"},
		{"JSON Debug", "json", "debug"},
		{"Console Warn", "console", "warn"},
		{"Text Error", "text", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(Config{Format: tt.format, Level: tt.level, Output: zapcore.AddSync(&buf)})
			require.NoError(t, err)
			logger.Error("heartbeat")
			require.Contains(t, buf.String(), "heartbeat")
		})
	}
}

func TestNew_InvalidInput(t *testing.T) {
	_, err := New(Config{Format: "json", Level: "loud"})
	require.Error(t, err)

	_, err = New(Config{Format: "xml", Level: "info"})
	require.Error(t, err)
}

func TestStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "json", Level: "info", Output: zapcore.AddSync(&buf)})
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.LogEntriesTotal.WithLabelValues("info"))
	logger.Info("computed", zap.String("field", "logm"), zap.Int("dim", 3))
	logger.Debug("suppressed")
	require.Equal(t, before+1, testutil.ToFloat64(metrics.LogEntriesTotal.WithLabelValues("info")))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "logm", entry["field"])
	require.Equal(t, float64(3), entry["dim"])
	require.Contains(t, entry, "timestamp")
}
