// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
)

var (
	criticalColor = color.New(color.FgRed, color.Bold)
	errorColor    = color.New(color.FgRed)
	warningColor  = color.New(color.FgYellow)
	verboseColor  = color.New(color.FgCyan)
	activityColor = color.New(color.FgMagenta)
)

// severityColor picks the color for an event line, nil for plain
// output.
func severityColor(t EventType) *color.Color {
	switch {
	case t&EventCritical != 0:
		return criticalColor
	case t&EventError != 0:
		return errorColor
	case t&EventWarning != 0:
		return warningColor
	case t&EventVerbose != 0:
		return verboseColor
	case t.IsActivity():
		return activityColor
	default:
		return nil
	}
}

// ConsoleListener writes events as colored text lines, red for errors,
// yellow for warnings, cyan for verbose and magenta for activity
// boundaries. Coloring follows the color package's global NoColor
// switch, so redirected output degrades to plain text.
type ConsoleListener struct {
	sync.Mutex
	name   string
	w      io.Writer
	closed atomic.Bool
}

// ConsoleOption configures a ConsoleListener.
type ConsoleOption func(*ConsoleListener)

// WithConsoleWriter redirects the listener's output, which defaults to
// standard output.
func WithConsoleWriter(w io.Writer) ConsoleOption {
	return func(l *ConsoleListener) {
		l.w = w
	}
}

// NewConsoleListener creates a console listener writing to standard
// output.
func NewConsoleListener(name string, opts ...ConsoleOption) *ConsoleListener {
	l := &ConsoleListener{name: name, w: color.Output}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the listener's name.
func (l *ConsoleListener) Name() string { return l.name }

// IsThreadSafe reports false: the dispatch path must serialize this
// listener.
func (*ConsoleListener) IsThreadSafe() bool { return false }

// TraceEvent writes one line, colored by severity.
func (l *ConsoleListener) TraceEvent(_ *EventContext, source string, t EventType, id int, message string) {
	if l.closed.Load() {
		return
	}
	line := formatEvent(source, t, id, message)
	if c := severityColor(t); c != nil {
		_, _ = c.Fprint(l.w, line)
		return
	}
	_, _ = fmt.Fprint(l.w, line)
}

// TraceData writes the data payload as one line, values joined with
// ", ".
func (l *ConsoleListener) TraceData(ec *EventContext, source string, t EventType, id int, data ...any) {
	l.TraceEvent(ec, source, t, id, FormatData(data...))
}

// Flush is a no-op; console output is unbuffered.
func (*ConsoleListener) Flush() {}

// Close marks the listener closed. The output writer is not owned and
// stays open.
func (l *ConsoleListener) Close() error {
	l.closed.Store(true)
	return nil
}
