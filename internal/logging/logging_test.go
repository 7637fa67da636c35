package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.Level != DefaultLevel {
		t.Errorf("Level = %q, want %q", cfg.Level, DefaultLevel)
	}
	if cfg.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", cfg.Format, DefaultFormat)
	}

	cfg = Config{Level: "debug", Format: "json"}
	cfg.SetDefaults()
	if cfg.Level != "debug" || cfg.Format != "json" {
		t.Error("SetDefaults overwrote explicit values")
	}
}

func TestNewDoesNotPanic(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		l := New(Config{Level: "debug", Format: format})
		l.Debug("debug line", String("k", "v"))
		l.Info("info line", Int("n", 1))
		child := l.With(String("component", "test"))
		child.Warn("warn line")
		_ = l.Sync()
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	l.Debug("ignored")
	l.Error("ignored", Error(nil))
	if l.With(String("k", "v")) != l {
		t.Error("With should return the same no-op instance")
	}
	if err := l.Sync(); err != nil {
		t.Errorf("Sync returned %v", err)
	}
}
