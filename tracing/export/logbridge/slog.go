// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package logbridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
	"github.com/AntonVasilkovsky/tracekit/tracing"
)

// SlogListener forwards trace events to a log/slog logger.
type SlogListener struct {
	sync.Mutex
	log *slog.Logger
}

// NewSlogListener creates a listener logging through log. Returns an
// error wrapping tracing.ErrNilArgument when log is nil.
func NewSlogListener(log *slog.Logger) (*SlogListener, error) {
	if log == nil {
		return nil, fmt.Errorf("%w: %s", tracing.ErrNilArgument, sr.Text(sr.LoggerNil))
	}
	return &SlogListener{log: log}, nil
}

func slogLevel(t tracing.EventType) slog.Level {
	switch t.Severity() {
	case tracing.LevelCritical, tracing.LevelError:
		return slog.LevelError
	case tracing.LevelWarning:
		return slog.LevelWarn
	case tracing.LevelVerbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Name returns "slog".
func (*SlogListener) Name() string { return "slog" }

// IsThreadSafe reports true; slog loggers are safe for concurrent use.
func (*SlogListener) IsThreadSafe() bool { return true }

// TraceEvent logs the event at the mapped level.
func (l *SlogListener) TraceEvent(ec *tracing.EventContext, source string, t tracing.EventType, id int, message string) {
	attrs := []slog.Attr{
		slog.String("source", source),
		slog.String("eventType", t.String()),
		slog.Int("id", id),
		slog.Uint64("seq", ec.Seq),
	}
	if ec.ActivityID != uuid.Nil {
		attrs = append(attrs, slog.String("activityId", ec.ActivityID.String()))
	}
	l.log.LogAttrs(context.Background(), slogLevel(t), message, attrs...)
}

// TraceData logs the data payload rendered through tracing.FormatData.
func (l *SlogListener) TraceData(ec *tracing.EventContext, source string, t tracing.EventType, id int, data ...any) {
	l.TraceEvent(ec, source, t, id, tracing.FormatData(data...))
}

// Flush is a no-op; slog handlers flush on their own.
func (*SlogListener) Flush() {}

// Close is a no-op; the logger is owned by the caller.
func (*SlogListener) Close() error { return nil }
