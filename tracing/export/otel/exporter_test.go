// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package otel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonVasilkovsky/tracekit/tracing"
	"github.com/AntonVasilkovsky/tracekit/tracing/export/otel"
)

func testMeter(t *testing.T) (metric.Meter, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return provider.Meter("tracekit-test"), reader
}

// sourceValue finds the named counter's datapoint for one source.
func sourceValue(t *testing.T, rm *metricdata.ResourceMetrics, name, source string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			assert.True(t, sum.IsMonotonic)
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("source")); ok && v.AsString() == source {
					return dp.Value
				}
			}
		}
	}
	t.Fatalf("no datapoint for metric %s, source %s", name, source)
	return 0
}

func TestNewExporterInvalidArguments(t *testing.T) {
	t.Parallel()

	t.Run("nil meter", func(t *testing.T) {
		t.Parallel()
		e, err := otel.NewExporter(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, tracing.ErrNilArgument)
		assert.Nil(t, e)
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()
		meter, _ := testMeter(t)
		e, err := otel.NewExporter(meter, tracing.MustSource("app.otel.ok"), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, tracing.ErrNilArgument)
		assert.ErrorContains(t, err, "source")
		assert.Nil(t, e)
	})
}

func TestExporterObservesSourceStats(t *testing.T) {
	t.Parallel()

	meter, reader := testMeter(t)

	s := tracing.MustSource("app.otel.stats", tracing.WithInitialLevel(tracing.LevelInformation))
	ls := s.Listeners()
	ls.Clear()
	require.NoError(t, ls.Add(tracing.NewRingListener("ring", 16)))

	s.TraceInformation("one")
	s.TraceInformation("two")
	s.TraceInformation("three")
	s.TraceEventf(tracing.EventVerbose, 1, "filtered")
	s.TraceEvent(tracing.EventVerbose, 2)

	e, err := otel.NewExporter(meter, s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	assert.Equal(t, int64(3), sourceValue(t, &rm, "tracekit.events.delivered", "app.otel.stats"))
	assert.Equal(t, int64(2), sourceValue(t, &rm, "tracekit.events.suppressed", "app.otel.stats"))

	// The counters are cumulative: a later collection reflects new
	// traffic.
	s.TraceInformation("four")
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(4), sourceValue(t, &rm, "tracekit.events.delivered", "app.otel.stats"))
}

func TestExporterObserveAddsSource(t *testing.T) {
	t.Parallel()

	meter, reader := testMeter(t)

	first := tracing.MustSource("app.otel.first", tracing.WithInitialLevel(tracing.LevelInformation))
	ls := first.Listeners()
	ls.Clear()
	require.NoError(t, ls.Add(tracing.NewRingListener("ring", 4)))
	first.TraceInformation("hello")

	e, err := otel.NewExporter(meter, first)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	second := tracing.MustSource("app.otel.second")
	second.TraceInformation("suppressed while off")
	require.NoError(t, e.Observe(second))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	assert.Equal(t, int64(1), sourceValue(t, &rm, "tracekit.events.delivered", "app.otel.first"))
	assert.Equal(t, int64(1), sourceValue(t, &rm, "tracekit.events.suppressed", "app.otel.second"))
	assert.Equal(t, int64(0), sourceValue(t, &rm, "tracekit.events.delivered", "app.otel.second"))

	assert.ErrorIs(t, e.Observe(nil), tracing.ErrNilArgument)
}

func TestExporterClose(t *testing.T) {
	t.Parallel()

	meter, _ := testMeter(t)
	e, err := otel.NewExporter(meter, tracing.MustSource("app.otel.close"))
	require.NoError(t, err)

	assert.NoError(t, e.Close())

	var nilExporter *otel.Exporter
	assert.NoError(t, nilExporter.Close())
}
