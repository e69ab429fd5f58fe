// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package logbridge

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
	"github.com/AntonVasilkovsky/tracekit/tracing"
)

// LogrListener forwards trace events to a logr.Logger, which lets any
// logr-backed logging stack receive them. Critical and Error events
// use the logger's error path; Verbose events log at verbosity 1,
// everything else at verbosity 0.
type LogrListener struct {
	sync.Mutex
	log logr.Logger
}

// NewLogrListener creates a listener logging through log. Returns an
// error wrapping tracing.ErrNilArgument when log has no sink, which is
// the zero logr.Logger's state.
func NewLogrListener(log logr.Logger) (*LogrListener, error) {
	if log.GetSink() == nil {
		return nil, fmt.Errorf("%w: %s", tracing.ErrNilArgument, sr.Text(sr.LoggerNil))
	}
	return &LogrListener{log: log}, nil
}

func logrKVs(ec *tracing.EventContext, source string, t tracing.EventType, id int) []any {
	kvs := []any{
		"source", source,
		"eventType", t.String(),
		"id", id,
		"seq", ec.Seq,
	}
	if ec.ActivityID != uuid.Nil {
		kvs = append(kvs, "activityId", ec.ActivityID.String())
	}
	return kvs
}

// Name returns "logr".
func (*LogrListener) Name() string { return "logr" }

// IsThreadSafe reports true; logr loggers are safe for concurrent use.
func (*LogrListener) IsThreadSafe() bool { return true }

// TraceEvent logs the event.
func (l *LogrListener) TraceEvent(ec *tracing.EventContext, source string, t tracing.EventType, id int, message string) {
	kvs := logrKVs(ec, source, t, id)
	switch t.Severity() {
	case tracing.LevelCritical, tracing.LevelError:
		l.log.Error(nil, message, kvs...)
	case tracing.LevelVerbose:
		l.log.V(1).Info(message, kvs...)
	default:
		l.log.Info(message, kvs...)
	}
}

// TraceData logs the data payload rendered through tracing.FormatData.
func (l *LogrListener) TraceData(ec *tracing.EventContext, source string, t tracing.EventType, id int, data ...any) {
	l.TraceEvent(ec, source, t, id, tracing.FormatData(data...))
}

// Flush is a no-op; logr has no flush operation.
func (*LogrListener) Flush() {}

// Close is a no-op; the logger is owned by the caller.
func (*LogrListener) Close() error { return nil }
