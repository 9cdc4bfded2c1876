package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/zevaryx/ButtonPaginator/internal/config"
)

func TestNewFormats(t *testing.T) {
	buf := &bytes.Buffer{}
	New(config.LoggingConfig{}, buf).Info("startup", slog.String("component", "app"))
	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "{") || !strings.Contains(line, `"component":"app"`) {
		t.Fatalf("expected JSON, got %s", line)
	}

	buf.Reset()
	New(config.LoggingConfig{Format: "text"}, buf).Info("startup", slog.String("component", "app"))
	line = strings.TrimSpace(buf.String())
	if strings.HasPrefix(line, "{") || !strings.Contains(line, "component=app") {
		t.Fatalf("expected key=value, got %s", line)
	}
}

func TestNewLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "", want: slog.LevelInfo},
		{level: "debug", want: slog.LevelDebug},
		{level: "WARNING", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := selectLevel(config.LoggingConfig{Level: tt.level}); got != tt.want {
			t.Errorf("selectLevel(%q) = %s, want %s", tt.level, got, tt.want)
		}
	}

	buf := &bytes.Buffer{}
	New(config.LoggingConfig{Level: "warn"}, buf).Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at warn level, got %s", buf.String())
	}
}
