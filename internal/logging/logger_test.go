package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestInit_LevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		logLevel string
		want     slog.Level
	}{
		{"development defaults to debug", "", "", slog.LevelDebug},
		{"production defaults to info", "production", "", slog.LevelInfo},
		{"explicit warn wins", "production", "warn", slog.LevelWarn},
		{"explicit error wins", "", "error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", tt.env)
			t.Setenv("LOG_LEVEL", tt.logLevel)

			Init()

			logger := slog.Default()
			if !logger.Enabled(context.Background(), tt.want) {
				t.Errorf("level %v should be enabled", tt.want)
			}
			if tt.want > slog.LevelDebug && logger.Enabled(context.Background(), tt.want-4) {
				t.Errorf("level %v should be disabled", tt.want-4)
			}
		})
	}
}
