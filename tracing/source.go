// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
)

// DefaultListenerName is the name of the stderr listener every source
// starts with.
const DefaultListenerName = "default"

var (
	// globalDispatch serializes every broadcast while the global lock
	// strategy is active, and every Close regardless of strategy.
	globalDispatch sync.Mutex

	globalLock atomic.Bool
	autoFlush  atomic.Bool
)

func init() {
	globalLock.Store(true)
}

// SetUseGlobalLock selects the process-wide locking strategy. With the
// global lock (the default) every broadcast from every source runs
// under one shared mutex, giving a total delivery order. Without it,
// dispatch locks each non-thread-safe listener individually and only
// per-listener-instance serialization is guaranteed. Choose the
// strategy during process configuration, before sources start tracing.
func SetUseGlobalLock(v bool) {
	globalLock.Store(v)
}

// UseGlobalLock reports whether the global lock strategy is active.
func UseGlobalLock() bool {
	return globalLock.Load()
}

// SetAutoFlush controls whether each listener is flushed immediately
// after an event is delivered to it.
func SetAutoFlush(v bool) {
	autoFlush.Store(v)
}

// AutoFlush reports whether automatic flushing is active.
func AutoFlush() bool {
	return autoFlush.Load()
}

// Configurator applies external configuration to a source. Configure is
// called with the parts of the source it may change: during lazy
// initialization, right after the default switch and listener
// collection are built, and again from Refresh and RefreshAll. It runs
// while the source's init lock is held, and during RefreshAll while the
// registry is locked, so it must not call back into the source,
// construct new sources, or call RefreshAll.
type Configurator interface {
	Configure(source string, sw *SourceSwitch, listeners *Listeners)
}

var configurator struct {
	mu sync.RWMutex
	c  Configurator
}

// SetConfigurator installs the process-wide configurator. Pass nil to
// remove it. Sources initialized before the call pick it up on their
// next Refresh.
func SetConfigurator(c Configurator) {
	configurator.mu.Lock()
	defer configurator.mu.Unlock()
	configurator.c = c
}

func currentConfigurator() Configurator {
	configurator.mu.RLock()
	defer configurator.mu.RUnlock()
	return configurator.c
}

// Source broadcasts named, leveled events to its listeners. A source is
// cheap to construct: the switch and listener collection are built on
// first use, so package-level sources that are never traced through
// cost nothing beyond their registry entry.
//
// All Trace methods are safe for concurrent use. Mutating the listener
// collection concurrently with tracing is not synchronized by the
// source; see Listeners.
type Source struct {
	name         string
	initialLevel Level

	initialized atomic.Bool
	initMu      sync.Mutex

	sw        atomic.Pointer[SourceSwitch]
	listeners *Listeners

	delivered  atomic.Uint64
	suppressed atomic.Uint64
}

// SourceOption configures a source at construction time.
type SourceOption func(*Source)

// WithInitialLevel sets the level the source's default switch starts
// with. Without this option a new source is off and suppresses every
// event until its switch is raised or external configuration applies.
func WithInitialLevel(l Level) SourceOption {
	return func(s *Source) {
		s.initialLevel = l
	}
}

// NewSource creates a source with the given name. The name identifies
// the source in listener output and in configuration; it is not a
// uniqueness key, and two sources may share one. Returns an error
// wrapping ErrInvalidArgument when the name is empty.
//
// Every source is tracked by a process-wide weak registry so that
// RefreshAll can reach it; the registry never keeps a source alive.
func NewSource(name string, opts ...SourceOption) (*Source, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, sr.Text(sr.SourceNameEmpty))
	}
	s := &Source{name: name, initialLevel: LevelOff}
	for _, opt := range opts {
		opt(s)
	}
	sources.add(s)
	return s, nil
}

// MustSource is like NewSource but panics on error. It simplifies
// package-level source variables.
func MustSource(name string, opts ...SourceOption) *Source {
	s, err := NewSource(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the source's name. It never triggers initialization.
func (s *Source) Name() string {
	return s.name
}

// Switch returns the source's switch, initializing the source first if
// needed.
func (s *Source) Switch() *SourceSwitch {
	s.ensureInitialized()
	return s.sw.Load()
}

// SetSwitch replaces the source's switch. Returns an error wrapping
// ErrNilArgument when sw is nil; the source is left untouched in that
// case. Several sources may share one switch to be gated together.
func (s *Source) SetSwitch(sw *SourceSwitch) error {
	if sw == nil {
		return fmt.Errorf("%w: %s", ErrNilArgument, sr.Text(sr.SwitchNil))
	}
	s.ensureInitialized()
	s.sw.Store(sw)
	return nil
}

// Listeners returns the live listener collection, initializing the
// source first if needed. Mutations through the returned value are
// observed by subsequent broadcasts.
func (s *Source) Listeners() *Listeners {
	s.ensureInitialized()
	return s.listeners
}

// ensureInitialized builds the switch and listener collection on first
// use. The fast path is a single atomic load; losers of the
// double-checked race observe a fully built source because the flag is
// stored only after every field is in place.
func (s *Source) ensureInitialized() {
	if s.initialized.Load() {
		return
	}
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.initialized.Load() {
		return
	}

	sw := NewSourceSwitch(s.name, s.initialLevel)
	s.sw.Store(sw)

	ls := &Listeners{}
	ls.items = append(ls.items, NewWriterListener(DefaultListenerName, os.Stderr))
	s.listeners = ls

	if c := currentConfigurator(); c != nil {
		c.Configure(s.name, sw, ls)
	}

	s.initialized.Store(true)
}

// Refresh re-applies external configuration. A source that was never
// initialized is initialized now (which applies configuration as part
// of construction); an initialized source has the installed
// configurator re-run against its current switch and listeners. Without
// a configurator, Refresh on an initialized source is a no-op.
func (s *Source) Refresh() {
	if !s.initialized.Load() {
		s.ensureInitialized()
		return
	}
	if c := currentConfigurator(); c != nil {
		c.Configure(s.name, s.sw.Load(), s.listeners)
	}
}

// admit initializes the source, runs the gate and keeps the stats
// counters. It reports whether the event should be broadcast.
func (s *Source) admit(t EventType) bool {
	s.ensureInitialized()
	if !s.sw.Load().ShouldTrace(t) {
		s.suppressed.Add(1)
		return false
	}
	s.delivered.Add(1)
	return true
}

func (s *Source) emitMessage(t EventType, id int, message string) {
	s.broadcast(func(l Listener, ec *EventContext) {
		l.TraceEvent(ec, s.name, t, id, message)
	})
}

// TraceEvent broadcasts an event carrying no message.
func (s *Source) TraceEvent(t EventType, id int) {
	if !s.admit(t) {
		return
	}
	s.emitMessage(t, id, "")
}

// TraceEventf broadcasts a formatted message event. With no args the
// format string is delivered verbatim, so callers can pass literal
// messages without worrying about percent signs. Formatting cost is
// only paid for events that pass the gate.
func (s *Source) TraceEventf(t EventType, id int, format string, args ...any) {
	if !s.admit(t) {
		return
	}
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	s.emitMessage(t, id, message)
}

// TraceData broadcasts raw data values. Listeners decide how to render
// them; the bundled ones use FormatData.
func (s *Source) TraceData(t EventType, id int, data ...any) {
	if !s.admit(t) {
		return
	}
	s.broadcast(func(l Listener, ec *EventContext) {
		l.TraceData(ec, s.name, t, id, data...)
	})
}

// TraceInformation broadcasts a plain informational message with event
// id 0.
func (s *Source) TraceInformation(message string) {
	if !s.admit(EventInformation) {
		return
	}
	s.emitMessage(EventInformation, 0, message)
}

// TraceInformationf broadcasts a formatted informational message with
// event id 0.
func (s *Source) TraceInformationf(format string, args ...any) {
	s.TraceEventf(EventInformation, 0, format, args...)
}

// TraceTransfer broadcasts an EventTransfer event that hands the
// current activity over to related. Transfer events carry no severity:
// they pass the gate only when EventTransfer is in the switch's
// activity mask.
func (s *Source) TraceTransfer(id int, message string, related uuid.UUID) {
	if !s.admit(EventTransfer) {
		return
	}
	s.emitMessage(EventTransfer, id, fmt.Sprintf("%s, relatedActivityId=%s", message, related))
}

// broadcast fans one admitted event out to every listener in order,
// under the active locking strategy. Locks are released on panic, but
// the panic itself propagates to the tracing caller and listeners later
// in the order are skipped.
func (s *Source) broadcast(emit func(Listener, *EventContext)) {
	ec := newEventContext()
	flush := AutoFlush()

	if UseGlobalLock() {
		globalDispatch.Lock()
		defer globalDispatch.Unlock()
		for _, l := range s.listeners.items {
			emit(l, ec)
			if flush {
				l.Flush()
			}
		}
		return
	}

	for _, l := range s.listeners.items {
		if l.IsThreadSafe() {
			emit(l, ec)
			if flush {
				l.Flush()
			}
			continue
		}
		func() {
			l.Lock()
			defer l.Unlock()
			emit(l, ec)
			if flush {
				l.Flush()
			}
		}()
	}
}

// Flush flushes every listener under the active locking strategy. A
// source that was never initialized has no listeners and returns
// immediately; Flush never triggers initialization.
func (s *Source) Flush() {
	if !s.initialized.Load() {
		return
	}

	if UseGlobalLock() {
		globalDispatch.Lock()
		defer globalDispatch.Unlock()
		for _, l := range s.listeners.items {
			l.Flush()
		}
		return
	}

	for _, l := range s.listeners.items {
		if l.IsThreadSafe() {
			l.Flush()
			continue
		}
		func() {
			l.Lock()
			defer l.Unlock()
			l.Flush()
		}()
	}
}

// Close closes every listener in order and returns their errors joined.
// Closing runs under the global dispatch lock regardless of the active
// strategy, so it never overlaps a global-lock broadcast. A source that
// was never initialized has nothing to close; Close never triggers
// initialization. The source remains usable afterward, though closed
// listeners typically drop further events.
func (s *Source) Close() error {
	if !s.initialized.Load() {
		return nil
	}

	globalDispatch.Lock()
	defer globalDispatch.Unlock()

	var errs []error
	for _, l := range s.listeners.items {
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close listener %q: %w", l.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Stats returns the number of events this source has delivered past its
// gate and the number its gate suppressed.
func (s *Source) Stats() (delivered, suppressed uint64) {
	return s.delivered.Load(), s.suppressed.Load()
}
