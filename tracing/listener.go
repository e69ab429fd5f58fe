// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
)

//go:generate mockgen -source=listener.go -destination=mocks/mock_listener.go -package=mocks Listener

// Listener receives the events a source broadcasts. Implementations that
// are not internally synchronized report IsThreadSafe false and are
// serialized by the dispatch path through the embedded Locker, which
// must guard the listener instance itself: a listener shared by several
// sources is then serialized across all of them. Embedding a sync.Mutex
// satisfies the Locker requirement.
//
// After Close, a listener must tolerate further Flush and Close calls
// without panicking.
type Listener interface {
	sync.Locker

	// Name identifies the listener within a collection. Names are
	// used for removal and configuration wiring; they need not be
	// unique.
	Name() string

	// TraceEvent delivers a message event. The context is shared by
	// every listener of one dispatch and must not be retained.
	TraceEvent(ec *EventContext, source string, t EventType, id int, message string)

	// TraceData delivers a raw data event.
	TraceData(ec *EventContext, source string, t EventType, id int, data ...any)

	// Flush pushes buffered output toward its destination. Failures
	// are kept by the listener and surfaced on Close.
	Flush()

	// Close releases resources held by the listener. Close is
	// idempotent.
	Close() error

	// IsThreadSafe reports whether the listener may be invoked
	// concurrently without external locking.
	IsThreadSafe() bool
}

// FormatData renders a data payload the way the bundled listeners do:
// each value formatted with fmt.Sprint and joined with ", ".
func FormatData(data ...any) string {
	switch len(data) {
	case 0:
		return ""
	case 1:
		return fmt.Sprint(data[0])
	}
	var b strings.Builder
	for i, d := range data {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, d)
	}
	return b.String()
}

// Listeners is the ordered collection of listeners attached to a
// source. Events are delivered in insertion order. The collection is
// returned live by Source.Listeners and is not synchronized: callers
// that mutate it while other goroutines trace through the same source
// must provide their own coordination.
type Listeners struct {
	items []Listener
}

// Add appends a listener. Returns an error wrapping ErrNilArgument when
// the listener is nil.
func (ls *Listeners) Add(l Listener) error {
	if l == nil {
		return fmt.Errorf("%w: %s", ErrNilArgument, sr.Text(sr.ListenerNil))
	}
	ls.items = append(ls.items, l)
	return nil
}

// Remove deletes the first listener with the given name and reports
// whether one was found. The removed listener is not closed.
func (ls *Listeners) Remove(name string) bool {
	for i, l := range ls.items {
		if l.Name() == name {
			ls.items = append(ls.items[:i], ls.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every listener without closing them.
func (ls *Listeners) Clear() {
	ls.items = nil
}

// Len returns the number of listeners.
func (ls *Listeners) Len() int {
	return len(ls.items)
}

// At returns the listener at position i. It panics when i is out of
// range, mirroring slice indexing.
func (ls *Listeners) At(i int) Listener {
	return ls.items[i]
}
