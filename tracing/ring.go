// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingCapacity is the record capacity a RingListener gets when
// none is specified.
const DefaultRingCapacity = 128

// Record is one event captured by a RingListener.
type Record struct {
	Time    time.Time
	Seq     uint64
	Source  string
	Type    EventType
	ID      int
	Message string
}

// RingListener keeps the last events in a fixed-size in-memory ring, a
// flight recorder to inspect after a failure. It is internally
// synchronized and reports IsThreadSafe true, so the dispatch path
// never locks around it.
type RingListener struct {
	sync.Mutex
	name   string
	buf    []Record
	next   int
	full   bool
	closed atomic.Bool
}

// NewRingListener creates a ring holding up to capacity records.
// Capacities below one fall back to DefaultRingCapacity.
func NewRingListener(name string, capacity int) *RingListener {
	if capacity < 1 {
		capacity = DefaultRingCapacity
	}
	return &RingListener{name: name, buf: make([]Record, capacity)}
}

// Name returns the listener's name.
func (l *RingListener) Name() string { return l.name }

// IsThreadSafe reports true; the ring carries its own lock.
func (*RingListener) IsThreadSafe() bool { return true }

func (l *RingListener) record(r Record) {
	if l.closed.Load() {
		return
	}
	l.Lock()
	defer l.Unlock()
	l.buf[l.next] = r
	l.next = (l.next + 1) % len(l.buf)
	if l.next == 0 {
		l.full = true
	}
}

// TraceEvent captures a message event, evicting the oldest record when
// the ring is full.
func (l *RingListener) TraceEvent(ec *EventContext, source string, t EventType, id int, message string) {
	l.record(Record{
		Time:    ec.Time,
		Seq:     ec.Seq,
		Source:  source,
		Type:    t,
		ID:      id,
		Message: message,
	})
}

// TraceData captures a data event with the payload rendered through
// FormatData.
func (l *RingListener) TraceData(ec *EventContext, source string, t EventType, id int, data ...any) {
	l.TraceEvent(ec, source, t, id, FormatData(data...))
}

// Snapshot returns the captured records ordered oldest to newest. The
// returned slice is a copy.
func (l *RingListener) Snapshot() []Record {
	l.Lock()
	defer l.Unlock()
	if !l.full {
		return append([]Record(nil), l.buf[:l.next]...)
	}
	out := make([]Record, 0, len(l.buf))
	out = append(out, l.buf[l.next:]...)
	return append(out, l.buf[:l.next]...)
}

// Len returns the number of records currently held.
func (l *RingListener) Len() int {
	l.Lock()
	defer l.Unlock()
	if l.full {
		return len(l.buf)
	}
	return l.next
}

// Flush is a no-op.
func (*RingListener) Flush() {}

// Close stops recording. Captured records remain available through
// Snapshot.
func (l *RingListener) Close() error {
	l.closed.Store(true)
	return nil
}
