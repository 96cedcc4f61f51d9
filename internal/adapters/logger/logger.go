// Package logger implements ports.Logger on top of log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/sizemap/internal/core/ports"
)

// messager is implemented by zerr errors and reports a message without its cause.
type messager interface {
	Message() string
}

// Logger implements ports.Logger. It prints styled lines by default and JSON
// records after SetJSON(true).
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	jsonMode bool
	output   io.Writer
}

// New creates a Logger writing to stderr.
func New() ports.Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput redirects the logger. A nil writer means stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON records and pretty lines, keeping the output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// rebuild replaces the slog handler. The caller must hold l.mu.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its chain of causes. Nil errors are ignored.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatError(err))
}

// errorMessages walks the chain of zerr errors. The first error that does not
// report its own message ends the walk with its full text.
func errorMessages(err error) []string {
	var messages []string
	for current := err; current != nil; current = errors.Unwrap(current) {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		messages = append(messages, m.Message())
	}
	return messages
}

// formatError renders the main error and its causes, one per line.
func formatError(err error) string {
	var b strings.Builder
	for i, msg := range errorMessages(err) {
		first, rest, _ := strings.Cut(msg, "\n")

		var indent string
		switch i {
		case 0:
			b.WriteString("Error: " + first)
			indent = "       "
		case 1:
			b.WriteString("\n\n  Caused by:\n    → " + first)
			indent = "      "
		default:
			b.WriteString("\n    → " + first)
			indent = "      "
		}

		if rest == "" {
			continue
		}
		for line := range strings.SplitSeq(rest, "\n") {
			b.WriteString("\n" + indent + line)
		}
	}
	return b.String()
}
