// Package sizemap turns a dependency graph into a size tree.
//
// Build walks the dependency oracle from a set of root entities and attaches
// every entity exactly once. Entities reached from two different root-level
// subtrees are moved into a single shared bucket. Finalize then rolls sizes
// up the tree and writes the display labels.
package sizemap

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports"
)

const instrumentationName = "go.trai.ch/sizemap/internal/engine/sizemap"

// Engine computes size trees against a set of oracles.
type Engine struct {
	deps     ports.DependencyOracle
	resolver ports.EntityResolver
	sizes    ports.SizeOracle
	chunks   ports.ChunkRegistry
	logger   ports.Logger
	tracer   trace.Tracer
}

// Report is the result of one computation.
type Report struct {
	Tree *domain.Tree
	// Shared is the shared bucket, or domain.NoNode when nothing was shared.
	Shared domain.NodeID
	// Failed counts entities that could not be resolved.
	Failed int
	Totals domain.SizeTotals
}

// New creates an Engine. The tracer defaults to the global otel provider.
func New(
	deps ports.DependencyOracle,
	resolver ports.EntityResolver,
	sizes ports.SizeOracle,
	chunks ports.ChunkRegistry,
	logger ports.Logger,
) *Engine {
	return &Engine{
		deps:     deps,
		resolver: resolver,
		sizes:    sizes,
		chunks:   chunks,
		logger:   logger,
		tracer:   otel.Tracer(instrumentationName),
	}
}

// WithTracer replaces the tracer used for engine spans.
func (e *Engine) WithTracer(tracer trace.Tracer) *Engine {
	e.tracer = tracer
	return e
}

// BuildOption configures a Build pass.
type BuildOption func(*buildOptions)

type buildOptions struct {
	filter domain.EntityID
}

// WithFilter restricts package references below the roots to members of a
// chunk, or to packages managed by a primary asset.
func WithFilter(id domain.EntityID) BuildOption {
	return func(o *buildOptions) {
		o.filter = id
	}
}

// Build attaches roots and everything they reference to a fresh tree.
// The returned report is not finalized.
func (e *Engine) Build(ctx context.Context, roots []domain.EntityID, kind domain.SizeKind, opts ...BuildOption) *Report {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	_, span := e.tracer.Start(ctx, "sizemap.build", trace.WithAttributes(
		attribute.Int("sizemap.roots", len(roots)),
		attribute.String("sizemap.kind", string(kind)),
		attribute.String("sizemap.filter", o.filter.String()),
	))
	defer span.End()

	b := &builder{
		deps:     e.deps,
		resolver: e.resolver,
		sizes:    e.sizes,
		chunks:   e.chunks,
		logger:   e.logger,
		span:     span,
		kind:     kind,
		tree:     domain.NewTree(),
		visited:  make(map[domain.EntityID]domain.NodeID),
		roots:    make(map[domain.EntityID]struct{}, len(roots)),
		shared:   domain.NoNode,
	}
	for _, id := range roots {
		b.roots[id] = struct{}{}
	}

	b.gather(roots, o.filter, b.tree.Root())

	span.SetAttributes(
		attribute.Int("sizemap.nodes", b.tree.Len()),
		attribute.Int("sizemap.failed", b.failed),
		attribute.Bool("sizemap.shared", b.shared != domain.NoNode),
	)

	return &Report{
		Tree:   b.tree,
		Shared: b.shared,
		Failed: b.failed,
	}
}

// Compute builds and finalizes the tree for roots.
func (e *Engine) Compute(ctx context.Context, roots []domain.EntityID, kind domain.SizeKind, opts ...BuildOption) *Report {
	report := e.Build(ctx, roots, kind, opts...)

	_, span := e.tracer.Start(ctx, "sizemap.finalize")
	defer span.End()

	report.Totals = Finalize(report.Tree, report.Shared)

	span.SetAttributes(
		attribute.Int("sizemap.assets", report.Totals.AssetCount),
		attribute.Int64("sizemap.size", report.Totals.Size),
		attribute.Bool("sizemap.unknown", report.Totals.AnyUnknown),
	)
	return report
}
