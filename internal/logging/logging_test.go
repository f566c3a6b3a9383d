package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   LogLevel
		wantOK bool
	}{
		{name: "debug", input: "debug", want: LevelDebug, wantOK: true},
		{name: "info", input: "info", want: LevelInfo, wantOK: true},
		{name: "warn", input: "warn", want: LevelWarn, wantOK: true},
		{name: "warning alias", input: "warning", want: LevelWarn, wantOK: true},
		{name: "error", input: "error", want: LevelError, wantOK: true},
		{name: "case insensitive", input: "DEBUG", want: LevelDebug, wantOK: true},
		{name: "surrounding space", input: "  warn ", want: LevelWarn, wantOK: true},
		{name: "unknown falls back to info", input: "verbose", want: LevelInfo, wantOK: false},
		{name: "empty falls back to info", input: "", want: LevelInfo, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("DEBUG", "")
	t.Setenv("LOG_LEVEL", "error")
	if got := levelFromEnv(); got != LevelError {
		t.Errorf("levelFromEnv() = %v, want error", got)
	}

	t.Setenv("DEBUG", "true")
	if got := levelFromEnv(); got != LevelDebug {
		t.Errorf("DEBUG=true should force debug, got %v", got)
	}
}

func TestLogLevelConstants(t *testing.T) {
	levels := []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}
	for i := 0; i < len(levels)-1; i++ {
		if levels[i] >= levels[i+1] {
			t.Errorf("Log levels should be in ascending order: %v >= %v", levels[i], levels[i+1])
		}
	}
}

func captureOutput(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()

	previous := GetLevel()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(previous)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t, LevelWarn)

	Debug("hidden debug")
	Info("hidden info")
	Warn("visible %s", "warning")
	Error("visible error %d", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] visible warning") {
		t.Errorf("missing warn line in %q", out)
	}
	if !strings.Contains(out, "[ERROR] visible error 7") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestForComponent(t *testing.T) {
	buf := captureOutput(t, LevelDebug)

	log := ForComponent("indexer")
	log.Debug("walking %s", "/tmp")
	log.Info("done")

	out := buf.String()
	if !strings.Contains(out, "[DEBUG] [indexer] walking /tmp") {
		t.Errorf("missing component debug line in %q", out)
	}
	if !strings.Contains(out, "[INFO] [indexer] done") {
		t.Errorf("missing component info line in %q", out)
	}
}

func TestIsDebugEnabled(t *testing.T) {
	captureOutput(t, LevelDebug)
	if !IsDebugEnabled() {
		t.Error("IsDebugEnabled should be true at debug level")
	}

	SetLevel(LevelInfo)
	if IsDebugEnabled() {
		t.Error("IsDebugEnabled should be false at info level")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.level.String()
			if got != tt.expected {
				t.Errorf("LogLevel.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
