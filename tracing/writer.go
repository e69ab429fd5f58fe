// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
)

// formatEvent renders the standard text line shared by the bundled
// text listeners.
func formatEvent(source string, t EventType, id int, message string) string {
	return fmt.Sprintf("%s %s: %d : %s\n", source, t, id, message)
}

// WriterListener writes events as text lines to a borrowed io.Writer.
// The listener does not own the writer: Close stops the listener but
// leaves the writer open, so wrapping os.Stderr or a shared buffer is
// safe. Use FileListener for output files the listener should own.
//
// WriterListener is not internally synchronized; the dispatch path
// serializes it through the embedded mutex.
type WriterListener struct {
	sync.Mutex
	name   string
	w      io.Writer
	closed atomic.Bool
}

// NewWriterListener creates a listener writing to w. A nil writer is
// replaced by io.Discard.
func NewWriterListener(name string, w io.Writer) *WriterListener {
	if w == nil {
		w = io.Discard
	}
	return &WriterListener{name: name, w: w}
}

// Name returns the listener's name.
func (l *WriterListener) Name() string { return l.name }

// IsThreadSafe reports false: the dispatch path must serialize this
// listener.
func (*WriterListener) IsThreadSafe() bool { return false }

// TraceEvent writes one formatted line. Write failures are dropped; a
// trace call has no error channel.
func (l *WriterListener) TraceEvent(_ *EventContext, source string, t EventType, id int, message string) {
	if l.closed.Load() {
		return
	}
	_, _ = io.WriteString(l.w, formatEvent(source, t, id, message))
}

// TraceData writes the data payload as one line, values joined with
// ", ".
func (l *WriterListener) TraceData(ec *EventContext, source string, t EventType, id int, data ...any) {
	l.TraceEvent(ec, source, t, id, FormatData(data...))
}

// Flush forwards to the writer when it buffers.
func (l *WriterListener) Flush() {
	if l.closed.Load() {
		return
	}
	if f, ok := l.w.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

// Close marks the listener closed and flushes the writer if it
// buffers. The writer itself stays open. Close is idempotent.
func (l *WriterListener) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	if f, ok := l.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// FileListener appends events as text lines to a file it owns. Flush
// syncs the file; Close syncs and closes it.
type FileListener struct {
	sync.Mutex
	name   string
	path   string
	f      *os.File
	closed atomic.Bool
}

// NewFileListener opens path for appending, creating it if needed.
// Returns an error wrapping ErrInvalidArgument when path is empty.
func NewFileListener(name, path string) (*FileListener, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, sr.Text(sr.PathEmpty))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &FileListener{name: name, path: path, f: f}, nil
}

// Name returns the listener's name.
func (l *FileListener) Name() string { return l.name }

// Path returns the file path the listener appends to.
func (l *FileListener) Path() string { return l.path }

// IsThreadSafe reports false: the dispatch path must serialize this
// listener.
func (*FileListener) IsThreadSafe() bool { return false }

// TraceEvent appends one formatted line.
func (l *FileListener) TraceEvent(_ *EventContext, source string, t EventType, id int, message string) {
	if l.closed.Load() {
		return
	}
	_, _ = io.WriteString(l.f, formatEvent(source, t, id, message))
}

// TraceData appends the data payload as one line, values joined with
// ", ".
func (l *FileListener) TraceData(ec *EventContext, source string, t EventType, id int, data ...any) {
	l.TraceEvent(ec, source, t, id, FormatData(data...))
}

// Flush syncs the file.
func (l *FileListener) Flush() {
	if l.closed.Load() {
		return
	}
	_ = l.f.Sync()
}

// Close syncs and closes the file. Close is idempotent; only the first
// call touches the file.
func (l *FileListener) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return errors.Join(l.f.Sync(), l.f.Close())
}
