// Package telemetry provides the trace provider behind engine spans.
package telemetry

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sizemap/internal/core/ports"
)

// InstrumentationName names the tracer handed to the engine.
const InstrumentationName = "go.trai.ch/sizemap"

// Provider owns an SDK tracer provider whose spans are reported through a LogBridge.
type Provider struct {
	tp     *sdktrace.TracerProvider
	bridge *LogBridge
}

// NewProvider creates a Provider that logs finished spans to logger once enabled.
func NewProvider(logger ports.Logger) *Provider {
	bridge := NewLogBridge(logger)
	return &Provider{
		tp:     sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge)),
		bridge: bridge,
	}
}

// Tracer returns the tracer used for engine spans.
func (p *Provider) Tracer() trace.Tracer {
	return p.tp.Tracer(InstrumentationName)
}

// Enable switches span logging on or off.
func (p *Provider) Enable(on bool) {
	p.bridge.Enable(on)
}

// Shutdown ends the provider. Spans started afterwards are dropped.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
