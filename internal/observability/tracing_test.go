package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/blogicum/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracingDisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	ctx, span := StartSpan(context.Background(), "noop", attribute.String("k", "v"))
	defer span.End()
	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
}

func TestInitTracingStdoutExporter(t *testing.T) {
	shutdown, err := InitTracing(config.TracingConfig{
		Enabled:     true,
		ServiceName: "blogicum-test",
		Exporter:    "stdout",
		SampleRatio: 1,
	}, "test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		_, _ = InitTracing(config.TracingConfig{}, "test")
	})

	_, span := StartSpan(context.Background(), "sampled")
	assert.True(t, span.SpanContext().IsValid())
	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
	span.End()
}
