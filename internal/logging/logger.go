// Package logging provides leveled logging and generation tracing for
// followflee. It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A GenerationLogger for structured JSONL generation traces
//     (.followflee/generations.jsonl)
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

// LevelTrace is a custom slog level below Debug for per-agent tracing.
// At this level individual moves and replacement decisions are included.
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

// GenerationLogger writes per-generation trace events to a JSONL file.
// It is safe for concurrent use. A nil GenerationLogger is safe to use;
// all methods are no-ops on nil receiver.
type GenerationLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewGenerationLogger creates a trace logger writing to
// dir/generations.jsonl. At "info" level (the default), returns nil — no
// file is created. At "debug" or "trace" level, the file is opened for
// append. Returns nil if the file cannot be opened. All methods are
// nil-safe.
func NewGenerationLogger(dir string, level string) *GenerationLogger {
	lvl := ParseLevel(level)
	if lvl == slog.LevelInfo {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, "generations.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}

	return &GenerationLogger{file: f}
}

// Log writes a generation event as a single JSONL line.
// A "time" field is added automatically. The caller's map is not mutated.
// Safe to call on nil receiver.
func (gl *GenerationLogger) Log(event map[string]any) {
	if gl == nil || gl.file == nil {
		return
	}

	// Copy to avoid mutating caller's map
	entry := make(map[string]any, len(event)+1)
	for k, v := range event {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	gl.mu.Lock()
	defer gl.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = gl.file.Write(data)
}

// Close closes the underlying file. Safe to call on nil receiver.
func (gl *GenerationLogger) Close() {
	if gl == nil || gl.file == nil {
		return
	}

	gl.mu.Lock()
	defer gl.mu.Unlock()

	gl.file.Close()
	gl.file = nil
}
