package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sizemap/internal/core/ports"
)

// LogBridge is a span processor that reports every finished span as a log line.
// It stays silent until enabled.
type LogBridge struct {
	logger  ports.Logger
	enabled atomic.Bool
}

// NewLogBridge creates a disabled LogBridge writing to logger.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// Enable switches span reporting on or off.
func (b *LogBridge) Enable(on bool) {
	b.enabled.Store(on)
}

// OnStart is called when a span starts.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !b.enabled.Load() {
		return
	}
	b.logger.Info(FormatSpan(s))
}

// Shutdown is called when the SDK shuts down.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}

// ForceFlush is called to force flush.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// FormatSpan renders a finished span as "name took 1.2ms key=value ...".
func FormatSpan(s sdktrace.ReadOnlySpan) string {
	var sb strings.Builder
	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Microsecond)
	fmt.Fprintf(&sb, "%s took %s", s.Name(), elapsed)

	for _, attr := range s.Attributes() {
		fmt.Fprintf(&sb, " %s=%s", attr.Key, attr.Value.Emit())
	}
	if status := s.Status(); status.Code == codes.Error {
		fmt.Fprintf(&sb, " error=%q", status.Description)
	}
	return sb.String()
}
