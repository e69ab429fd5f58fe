// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

// Package nettrace mirrors trace events into a golang.org/x/net/trace
// event log, making them visible on the /debug/events page alongside
// the rest of a server's diagnostics.
package nettrace

import (
	"sync"
	"sync/atomic"

	"golang.org/x/net/trace"

	"github.com/AntonVasilkovsky/tracekit/tracing"
)

// EventLogListener forwards trace events to an x/net/trace event log.
// Critical and Error events use the log's error path and are counted in
// its error totals; everything else is recorded as a plain entry.
type EventLogListener struct {
	sync.Mutex
	name   string
	el     trace.EventLog
	closed atomic.Bool
}

// NewEventLogListener creates a listener backed by a new event log
// registered under the given family and title.
func NewEventLogListener(family, title string) *EventLogListener {
	return &EventLogListener{
		name: family,
		el:   trace.NewEventLog(family, title),
	}
}

// Name returns the event log family.
func (l *EventLogListener) Name() string { return l.name }

// IsThreadSafe reports true; event logs carry their own lock.
func (*EventLogListener) IsThreadSafe() bool { return true }

// TraceEvent records one entry.
func (l *EventLogListener) TraceEvent(_ *tracing.EventContext, _ string, t tracing.EventType, id int, message string) {
	if l.closed.Load() {
		return
	}
	sev := t.Severity()
	if sev != tracing.LevelOff && sev <= tracing.LevelError {
		l.el.Errorf("%s [%d]: %s", t, id, message)
		return
	}
	l.el.Printf("%s [%d]: %s", t, id, message)
}

// TraceData records the data payload rendered through
// tracing.FormatData.
func (l *EventLogListener) TraceData(ec *tracing.EventContext, source string, t tracing.EventType, id int, data ...any) {
	l.TraceEvent(ec, source, t, id, tracing.FormatData(data...))
}

// Flush is a no-op.
func (*EventLogListener) Flush() {}

// Close finishes the event log and unregisters it from the debug page.
// Close is idempotent.
func (l *EventLogListener) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	l.el.Finish()
	return nil
}
