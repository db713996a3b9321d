package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, test := range tests {
		if got := ParseLevel(test.input); got != test.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", test.input, got, test.want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")

	log.Debug("hidden")
	log.Info("device selected", "name", "llvmpipe")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "device selected" || entry["name"] != "llvmpipe" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewTextFallback(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "yaml")

	log.Debug("swapchain recreated", "width", 640)

	out := buf.String()
	if !strings.Contains(out, "msg=\"swapchain recreated\"") || !strings.Contains(out, "width=640") {
		t.Errorf("unexpected text output: %q", out)
	}
}
