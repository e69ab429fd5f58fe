// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package logbridge

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
	"github.com/AntonVasilkovsky/tracekit/tracing"
)

// ZapListener forwards trace events to a zap logger.
type ZapListener struct {
	sync.Mutex
	log *zap.Logger
}

// NewZapListener creates a listener logging through log. Returns an
// error wrapping tracing.ErrNilArgument when log is nil.
func NewZapListener(log *zap.Logger) (*ZapListener, error) {
	if log == nil {
		return nil, fmt.Errorf("%w: %s", tracing.ErrNilArgument, sr.Text(sr.LoggerNil))
	}
	return &ZapListener{log: log}, nil
}

func zapLevel(t tracing.EventType) zapcore.Level {
	switch t.Severity() {
	case tracing.LevelCritical, tracing.LevelError:
		return zapcore.ErrorLevel
	case tracing.LevelWarning:
		return zapcore.WarnLevel
	case tracing.LevelVerbose:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

func zapFields(ec *tracing.EventContext, source string, t tracing.EventType, id int) []zap.Field {
	fields := []zap.Field{
		zap.String("source", source),
		zap.Stringer("eventType", t),
		zap.Int("id", id),
		zap.Uint64("seq", ec.Seq),
	}
	if ec.ActivityID != uuid.Nil {
		fields = append(fields, zap.String("activityId", ec.ActivityID.String()))
	}
	return fields
}

// Name returns "zap".
func (*ZapListener) Name() string { return "zap" }

// IsThreadSafe reports true; zap loggers are safe for concurrent use.
func (*ZapListener) IsThreadSafe() bool { return true }

// TraceEvent logs the event at the mapped level. The level check is
// zap's own, so events the logger is not configured for cost no
// field allocation.
func (l *ZapListener) TraceEvent(ec *tracing.EventContext, source string, t tracing.EventType, id int, message string) {
	if ce := l.log.Check(zapLevel(t), message); ce != nil {
		ce.Write(zapFields(ec, source, t, id)...)
	}
}

// TraceData logs the data payload rendered through tracing.FormatData.
func (l *ZapListener) TraceData(ec *tracing.EventContext, source string, t tracing.EventType, id int, data ...any) {
	l.TraceEvent(ec, source, t, id, tracing.FormatData(data...))
}

// Flush syncs the logger, dropping the error; Close reports it.
func (l *ZapListener) Flush() {
	_ = l.log.Sync()
}

// Close syncs the logger. The logger itself stays usable; it is owned
// by the caller.
func (l *ZapListener) Close() error {
	return l.log.Sync()
}
