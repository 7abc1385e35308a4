package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logAtDebug bool
		logAtInfo  bool
	}{
		{"info filters debug", "info", false, true},
		{"debug passes debug", "debug", true, true},
		{"trace passes debug", "trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Debug("debug message")
			hasDebug := strings.Contains(buf.String(), "debug message")
			if hasDebug != tt.logAtDebug {
				t.Errorf("debug message visible = %v, want %v (buf: %q)", hasDebug, tt.logAtDebug, buf.String())
			}

			buf.Reset()
			logger.Info("info message")
			hasInfo := strings.Contains(buf.String(), "info message")
			if hasInfo != tt.logAtInfo {
				t.Errorf("info message visible = %v, want %v (buf: %q)", hasInfo, tt.logAtInfo, buf.String())
			}
		})
	}
}

func TestLevelTrace(t *testing.T) {
	// Trace should be below debug (more verbose)
	if LevelTrace >= slog.LevelDebug {
		t.Errorf("LevelTrace (%d) should be less than LevelDebug (%d)", LevelTrace, slog.LevelDebug)
	}
}

func TestNewRunLogger_InfoLevel(t *testing.T) {
	dir := t.TempDir()
	rl := NewRunLogger(dir, "info")

	// At info level, run logger should be nil
	if rl != nil {
		t.Error("expected nil RunLogger at info level")
	}

	// Nil logger should still be safe to use
	rl.Log(map[string]any{"run": "baseline"})

	path := filepath.Join(dir, "runs.jsonl")
	if _, err := os.Stat(path); err == nil {
		t.Error("runs.jsonl should not exist at info level")
	}
}

func TestNewRunLogger_DebugLevel(t *testing.T) {
	dir := t.TempDir()
	rl := NewRunLogger(dir, "debug")
	defer rl.Close()

	rl.Log(map[string]any{"run": "d_tau x1.1", "samples": 1000})

	path := filepath.Join(dir, "runs.jsonl")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read runs.jsonl: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("failed to parse JSONL entry: %v", err)
	}

	if entry["run"] != "d_tau x1.1" {
		t.Errorf("run = %v, want 'd_tau x1.1'", entry["run"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected 'time' field in run log entry")
	}
}

func TestNewRunLogger_MultipleWrites(t *testing.T) {
	dir := t.TempDir()
	rl := NewRunLogger(dir, "debug")
	defer rl.Close()

	rl.Log(map[string]any{"run": "first"})
	rl.Log(map[string]any{"run": "second"})

	path := filepath.Join(dir, "runs.jsonl")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read runs.jsonl: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), string(data))
	}

	var first, second map[string]any
	json.Unmarshal([]byte(lines[0]), &first)
	json.Unmarshal([]byte(lines[1]), &second)

	if first["run"] != "first" {
		t.Errorf("first run = %v, want 'first'", first["run"])
	}
	if second["run"] != "second" {
		t.Errorf("second run = %v, want 'second'", second["run"])
	}
}

func TestRunLogger_NilSafety(t *testing.T) {
	// nil RunLogger should not panic
	var rl *RunLogger
	rl.Log(map[string]any{"run": "should_not_panic"})
	rl.Close()
}

func TestRunLogger_DoesNotMutateCallerMap(t *testing.T) {
	dir := t.TempDir()
	rl := NewRunLogger(dir, "debug")
	defer rl.Close()

	event := map[string]any{"run": "baseline"}
	rl.Log(event)

	if _, hasTime := event["time"]; hasTime {
		t.Error("Log() should not mutate caller's map, but 'time' was injected")
	}
}

func TestRunLogger_LogAfterClose(t *testing.T) {
	dir := t.TempDir()
	rl := NewRunLogger(dir, "debug")

	rl.Log(map[string]any{"run": "before_close"})
	rl.Close()

	// Should be a no-op, not panic or error
	rl.Log(map[string]any{"run": "after_close"})
}

func TestNewRunLogger_CreatesDir(t *testing.T) {
	base := t.TempDir()
	nestedDir := filepath.Join(base, "results", "run1")

	rl := NewRunLogger(nestedDir, "debug")
	if rl == nil {
		t.Fatal("expected non-nil RunLogger when dir needs creation")
	}
	defer rl.Close()

	rl.Log(map[string]any{"run": "dir_create_test"})

	path := filepath.Join(nestedDir, "runs.jsonl")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("runs.jsonl should exist after dir creation: %v", err)
	}
}
