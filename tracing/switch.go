// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import "sync/atomic"

// SourceSwitch is the admission gate of a source. It holds a mutable
// verbosity level and a mutable mask of event types that bypass the
// level comparison. Both fields are updated atomically, so the gate can
// be reconfigured while other goroutines are tracing; every ShouldTrace
// call after an update observes the new values.
type SourceSwitch struct {
	name       string
	level      atomic.Int32
	activities atomic.Uint32
}

// NewSourceSwitch creates a switch with the given diagnostic name and
// initial level. The name has no semantic role; it exists so that
// configuration and debug output can identify the switch.
func NewSourceSwitch(name string, level Level) *SourceSwitch {
	sw := &SourceSwitch{name: name}
	sw.level.Store(int32(level))
	return sw
}

// Name returns the diagnostic name of the switch.
func (sw *SourceSwitch) Name() string {
	return sw.name
}

// Level returns the current verbosity level.
func (sw *SourceSwitch) Level() Level {
	return Level(sw.level.Load())
}

// SetLevel replaces the verbosity level. The change takes effect for
// every subsequent ShouldTrace call on any goroutine.
func (sw *SourceSwitch) SetLevel(l Level) {
	sw.level.Store(int32(l))
}

// Activities returns the current mask of event types that pass the gate
// regardless of severity.
func (sw *SourceSwitch) Activities() EventType {
	return EventType(sw.activities.Load())
}

// SetActivities replaces the always-trace mask. Passing
// EventActivityAll admits every activity boundary event; passing 0
// restores pure level-based gating.
func (sw *SourceSwitch) SetActivities(mask EventType) {
	sw.activities.Store(uint32(mask))
}

// ShouldTrace reports whether an event of the given type passes the
// gate. LevelOff suppresses everything. Otherwise the event passes when
// one of its bits is in the activity mask, or when its severity is at or
// above the configured level. Activity-only event types never pass via
// the severity comparison.
func (sw *SourceSwitch) ShouldTrace(t EventType) bool {
	level := sw.Level()
	if level == LevelOff {
		return false
	}
	if t&sw.Activities() != 0 {
		return true
	}
	sev := t.Severity()
	return sev != LevelOff && sev <= level
}
