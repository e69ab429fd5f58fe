// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

// Package otel exports per-source dispatch statistics as OpenTelemetry
// metrics. The exporter observes each source's delivered and
// suppressed counters on every collection, tagged with the source
// name, so dashboards can show how much tracing a process performs and
// how much its gates filter out.
package otel

import (
	"context"
	"fmt"
	"sync"

	"fortio.org/safecast"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
	"github.com/AntonVasilkovsky/tracekit/tracing"
)

// Exporter publishes tracekit.events.delivered and
// tracekit.events.suppressed observable counters for a set of sources.
type Exporter struct {
	mu           sync.Mutex
	sources      []*tracing.Source
	registration metric.Registration
}

// NewExporter registers the observable counters with meter and starts
// observing the given sources. More sources can be added later with
// Observe. Returns an error wrapping tracing.ErrNilArgument when the
// meter or any source is nil.
func NewExporter(meter metric.Meter, srcs ...*tracing.Source) (*Exporter, error) {
	if meter == nil {
		return nil, fmt.Errorf("%w: %s", tracing.ErrNilArgument, sr.Text(sr.MeterNil))
	}
	e := &Exporter{}
	for _, s := range srcs {
		if s == nil {
			return nil, fmt.Errorf("%w: source", tracing.ErrNilArgument)
		}
		e.sources = append(e.sources, s)
	}

	delivered, err := meter.Int64ObservableCounter(
		"tracekit.events.delivered",
		metric.WithDescription("Events admitted by the source gate and broadcast to listeners."),
	)
	if err != nil {
		return nil, fmt.Errorf("create delivered counter: %w", err)
	}
	suppressed, err := meter.Int64ObservableCounter(
		"tracekit.events.suppressed",
		metric.WithDescription("Events rejected by the source gate."),
	)
	if err != nil {
		return nil, fmt.Errorf("create suppressed counter: %w", err)
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		e.mu.Lock()
		defer e.mu.Unlock()
		for _, s := range e.sources {
			d, sup := s.Stats()
			dv, err := safecast.Conv[int64](d)
			if err != nil {
				return fmt.Errorf("observe source %q: %w", s.Name(), err)
			}
			sv, err := safecast.Conv[int64](sup)
			if err != nil {
				return fmt.Errorf("observe source %q: %w", s.Name(), err)
			}
			attrs := metric.WithAttributes(attribute.String("source", s.Name()))
			observer.ObserveInt64(delivered, dv, attrs)
			observer.ObserveInt64(suppressed, sv, attrs)
		}
		return nil
	}, delivered, suppressed)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	e.registration = registration
	return e, nil
}

// Observe adds a source to the exporter's set. Returns an error
// wrapping tracing.ErrNilArgument when s is nil.
func (e *Exporter) Observe(s *tracing.Source) error {
	if s == nil {
		return fmt.Errorf("%w: source", tracing.ErrNilArgument)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sources = append(e.sources, s)
	return nil
}

// Close unregisters the metric callback. The exporter must not be used
// afterward.
func (e *Exporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
