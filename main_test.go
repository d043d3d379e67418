package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
)

func TestInitLogger(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		logLevel string
		enabled  slog.Level
		disabled slog.Level
	}{
		{logLevel: "debug", enabled: slog.LevelDebug, disabled: slog.LevelDebug - 1},
		{logLevel: "info", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
		{logLevel: "warn", enabled: slog.LevelWarn, disabled: slog.LevelInfo},
		{logLevel: "error", enabled: slog.LevelError, disabled: slog.LevelWarn},
		{logLevel: "verbose", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
		{logLevel: "", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run("level "+tt.logLevel, func(t *testing.T) {
			logger := initLogger(&config.Config{LogLevel: tt.logLevel})

			assert.True(t, logger.Enabled(ctx, tt.enabled))
			assert.False(t, logger.Enabled(ctx, tt.disabled))
		})
	}
}
