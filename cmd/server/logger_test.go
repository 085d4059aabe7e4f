package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogHandler(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newLogHandler(&buf, "info", "")).Info("hello", "key", "value")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"key":"value"`) {
		t.Errorf("Expected JSON output, got %q", buf.String())
	}

	buf.Reset()
	logger := slog.New(newLogHandler(&buf, "warn", "text"))
	logger.Info("dropped")
	logger.Warn("kept", "key", "value")
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("Expected info to be filtered at warn level")
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("Expected text output, got %q", out)
	}
}
