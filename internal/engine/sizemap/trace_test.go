package sizemap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/sizemap/internal/core/domain"
)

func TestCompute_RecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	reg := newFakeRegistry()
	a := reg.add("/Game/A", "Blueprint", 10, "/Game/S")
	b := reg.add("/Game/B", "Blueprint", 20, "/Game/S")
	reg.add("/Game/S", "Texture2D", 30)

	engine := newEngine(t, reg).WithTracer(tp.Tracer("test"))
	engine.Compute(context.Background(), []domain.EntityID{a, b}, domain.SizeKindDisk)

	spans := sr.Ended()
	require.Len(t, spans, 2)

	build := spans[0]
	assert.Equal(t, "sizemap.build", build.Name())
	attrs := attribute.NewSet(build.Attributes()...)
	roots, _ := attrs.Value("sizemap.roots")
	assert.Equal(t, int64(2), roots.AsInt64())
	shared, _ := attrs.Value("sizemap.shared")
	assert.True(t, shared.AsBool())

	require.Len(t, build.Events(), 1)
	event := build.Events()[0]
	assert.Equal(t, "shared root created", event.Name)
	assert.Contains(t, event.Attributes, attribute.String("sizemap.entity", "/Game/S"))

	finalize := spans[1]
	assert.Equal(t, "sizemap.finalize", finalize.Name())
	attrs = attribute.NewSet(finalize.Attributes()...)
	size, _ := attrs.Value("sizemap.size")
	assert.Equal(t, int64(60), size.AsInt64())
	assets, _ := attrs.Value("sizemap.assets")
	assert.Equal(t, int64(3), assets.AsInt64())
}
