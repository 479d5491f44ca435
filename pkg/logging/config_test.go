package logging

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseTimeFormat(t *testing.T) {
	if got := parseTimeFormat("rfc3339"); got != time.RFC3339 {
		t.Errorf("parseTimeFormat(rfc3339) = %q", got)
	}
	if got := parseTimeFormat("unix"); got != "" {
		t.Errorf("parseTimeFormat(unix) = %q, want empty", got)
	}
	if got := parseTimeFormat("anything-else"); got != time.Kitchen {
		t.Errorf("parseTimeFormat default = %q, want kitchen", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("default level = %q, want info", cfg.Level)
	}
	if cfg.Output != "stderr" {
		t.Errorf("default output = %q, want stderr", cfg.Output)
	}
}

func TestNewLoggerFromNilConfig(t *testing.T) {
	// Must not panic and must produce a usable logger.
	logger := NewLoggerFromConfig(nil)
	logger.Info().Msg("ok")
}
