// Package logging provides leveled logging and run tracing for adsens.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A RunLogger for structured JSONL traces of individual integration runs
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom slog level below Debug for per-run solver detail.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// RunLogger writes one JSONL line per integration run, recording the case,
// the perturbed parameter, the factor and the outcome. It is safe for
// concurrent use, which matters when perturbation runs execute in parallel.
// A nil RunLogger is safe to use; all methods are no-ops on nil receiver.
type RunLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewRunLogger creates a run logger writing to dir/runs.jsonl.
// At "info" level (the default), returns nil — no file is created.
// At "debug" or "trace" level, the file is opened for append.
// Returns nil if the file cannot be opened. All methods are nil-safe.
func NewRunLogger(dir string, level string) *RunLogger {
	lvl := ParseLevel(level)
	if lvl == slog.LevelInfo {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}

	path := filepath.Join(dir, "runs.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}

	return &RunLogger{file: f}
}

// Log writes a run event as a single JSONL line.
// A "time" field is added automatically. The caller's map is not mutated.
// Safe to call on nil receiver.
func (rl *RunLogger) Log(event map[string]any) {
	if rl == nil || rl.file == nil {
		return
	}

	// Copy to avoid mutating caller's map
	entry := make(map[string]any, len(event)+1)
	for k, v := range event {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = rl.file.Write(data)
}

// Close closes the underlying file. Safe to call on nil receiver.
func (rl *RunLogger) Close() {
	if rl == nil || rl.file == nil {
		return
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.file.Close()
	rl.file = nil
}
