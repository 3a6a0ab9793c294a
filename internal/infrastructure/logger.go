package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// NewRunLogger creates the dual-sink logger for a single report run.
//
// The file sink at logPath always captures everything (Debug and up) so the
// run log can diagnose a failure without rerunning. The console sink on
// stderr is quieter: warnings and errors by default, full progress output
// when verbose is set. The returned close function flushes and closes the
// log file and must be called on every exit path.
func NewRunLogger(logPath string, verbose bool) (*slog.Logger, func() error, error) {
	file, err := openLogFile(logPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	consoleLevel := slog.LevelWarn
	if verbose {
		consoleLevel = slog.LevelInfo
	}

	handler := &dualHandler{handlers: []slog.Handler{
		newPipeHandler(file, slog.LevelDebug),
		newPipeHandler(os.Stderr, consoleLevel),
	}}

	return slog.New(handler), file.Close, nil
}

// NewConsoleLogger creates a console-only logger for use before the run's
// output directory (and therefore its log file) exists.
func NewConsoleLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(newPipeHandler(os.Stderr, level))
}

// openLogFile opens the log file, creating parent directories as needed
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// dualHandler fans a record out to every sink whose level admits it
type dualHandler struct {
	handlers []slog.Handler
}

// Enabled reports whether at least one sink would accept the level
func (h *dualHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every enabled sink
func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WithAttrs returns a new handler with additional attributes on every sink
func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &dualHandler{handlers: handlers}
}

// WithGroup returns a new handler with the group opened on every sink
func (h *dualHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &dualHandler{handlers: handlers}
}

// pipeHandler writes log lines as
//
//	2006-01-02 15:04:05 | LEVEL | message | key=value key=value
//
// which keeps the run log readable in any text editor while preserving
// structured attributes.
type pipeHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func newPipeHandler(w io.Writer, level slog.Level) *pipeHandler {
	return &pipeHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	}
}

// Enabled implements slog.Handler
func (h *pipeHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler
func (h *pipeHandler) Handle(_ context.Context, r slog.Record) error {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "%s | %-5s | %s",
		r.Time.Format("2006-01-02 15:04:05"), r.Level.String(), r.Message)

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))
		return true
	})
	if len(attrs) > 0 {
		buf.WriteString(" |")
		for _, a := range attrs {
			fmt.Fprintf(buf, " %s=%v", a.Key, a.Value.Resolve())
		}
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs implements slog.Handler
func (h *pipeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, clone.qualify(a))
	}
	return clone
}

// WithGroup implements slog.Handler
func (h *pipeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *pipeHandler) clone() *pipeHandler {
	return &pipeHandler{
		mu:     h.mu,
		w:      h.w,
		level:  h.level,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

// qualify prefixes the attribute key with the open group names
func (h *pipeHandler) qualify(a slog.Attr) slog.Attr {
	for i := len(h.groups) - 1; i >= 0; i-- {
		a.Key = h.groups[i] + "." + a.Key
	}
	return a
}
