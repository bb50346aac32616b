package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_WiresLoggerTracerAndMeter(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	var logs bytes.Buffer
	exporter := tracetest.NewInMemoryExporter()

	instruments, shutdown, err := Init(context.Background(), "commerce-test", WithLogWriter(&logs), WithSpanExporter(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	ctx, span := instruments.Tracer("test").Start(context.Background(), "place-order")
	instruments.Logger.DebugContext(ctx, "placing order")
	span.End()

	var record map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &record))
	require.Equal(t, "placing order", record["msg"])
	require.Equal(t, span.SpanContext().TraceID().String(), record["trace_id"])

	counter, err := instruments.Meter("test").Int64Counter("orders.service.orders_created")
	require.NoError(t, err)
	counter.Add(ctx, 2)
	var rm metricdata.ResourceMetrics
	require.NoError(t, instruments.MetricReader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, "orders.service.orders_created", rm.ScopeMetrics[0].Metrics[0].Name)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
	require.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestInstruments_NilSafe(t *testing.T) {
	var instruments *Instruments
	require.NotNil(t, instruments.Tracer("x"))
	require.NotNil(t, instruments.Meter("x"))
}
