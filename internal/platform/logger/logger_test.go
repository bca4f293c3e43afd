// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniplanner/planner-api/internal/config"
	"github.com/uniplanner/planner-api/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case level", logLevel: "INFO"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tc.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)

			// The returned logger is also installed as the process default
			assert.Equal(t, log, slog.Default())
		})
	}
}

func TestContextLogger(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("round trip through context", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), base)
		assert.Equal(t, base, logger.FromContext(ctx))
	})

	t.Run("missing logger falls back to default", func(t *testing.T) {
		assert.Equal(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("nil context falls back to default", func(t *testing.T) {
		assert.Equal(t, slog.Default(), logger.FromContext(nil)) //nolint:staticcheck
	})

	t.Run("FromContextOrDefault prefers context logger", func(t *testing.T) {
		fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := logger.WithLogger(context.Background(), base)
		assert.Equal(t, base, logger.FromContextOrDefault(ctx, fallback))
	})

	t.Run("FromContextOrDefault uses fallback when absent", func(t *testing.T) {
		fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
		assert.Equal(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	})
}
