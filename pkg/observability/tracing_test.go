package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/pos-inventario/pkg/observability"
)

func TestSetupTracing_SinEndpoint(t *testing.T) {
	shutdown, err := observability.SetupTracing(context.Background(), observability.TracingConfig{ServiceName: "pos"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
}

func TestSetupTracing_ConEndpoint(t *testing.T) {
	shutdown, err := observability.SetupTracing(context.Background(), observability.TracingConfig{
		Endpoint:    "http://127.0.0.1:4318",
		ServiceName: "pos",
	})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "prueba")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
