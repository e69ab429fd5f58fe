// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"fmt"
	"strings"
)

// Level is the verbosity threshold of a source switch. Levels are ordered:
// a switch set to LevelWarning admits Critical, Error and Warning events
// and suppresses Information and Verbose ones. LevelOff suppresses
// everything, including activity events.
type Level int32

// Switch levels, in ascending order of verbosity.
const (
	LevelOff Level = iota
	LevelCritical
	LevelError
	LevelWarning
	LevelInformation
	LevelVerbose
)

var levelNames = map[Level]string{
	LevelOff:         "Off",
	LevelCritical:    "Critical",
	LevelError:       "Error",
	LevelWarning:     "Warning",
	LevelInformation: "Information",
	LevelVerbose:     "Verbose",
}

// String returns the canonical name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int32(l))
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive. Returns an error wrapping ErrInvalidArgument for
// unknown names.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return l, nil
		}
	}
	return LevelOff, fmt.Errorf("%w: unknown level %q", ErrInvalidArgument, s)
}

// EventType classifies a traced event. The low byte carries severity
// bits, one per level; the high byte carries activity boundary bits used
// to correlate logical operations across components. An event normally
// has exactly one bit set, but masks built from several bits are valid
// arguments to SourceSwitch.SetActivities.
type EventType uint16

// Severity event types.
const (
	EventCritical EventType = 1 << iota
	EventError
	EventWarning
	EventInformation
	EventVerbose
)

// Activity boundary event types.
const (
	EventStart EventType = 0x0100 << iota
	EventStop
	EventSuspend
	EventResume
	EventTransfer
)

// EventActivityAll is the mask covering every activity boundary bit.
const EventActivityAll = EventStart | EventStop | EventSuspend | EventResume | EventTransfer

// EventSeverityAll is the mask covering every severity bit.
const EventSeverityAll = EventCritical | EventError | EventWarning | EventInformation | EventVerbose

var eventTypeNames = []struct {
	bit  EventType
	name string
}{
	{EventCritical, "Critical"},
	{EventError, "Error"},
	{EventWarning, "Warning"},
	{EventInformation, "Information"},
	{EventVerbose, "Verbose"},
	{EventStart, "Start"},
	{EventStop, "Stop"},
	{EventSuspend, "Suspend"},
	{EventResume, "Resume"},
	{EventTransfer, "Transfer"},
}

// Severity maps the event type to the switch level that admits it. The
// most severe bit wins when several are set. Activity-only event types
// map to LevelOff: they carry no severity and pass the gate only through
// the activity mask.
func (t EventType) Severity() Level {
	switch {
	case t&EventCritical != 0:
		return LevelCritical
	case t&EventError != 0:
		return LevelError
	case t&EventWarning != 0:
		return LevelWarning
	case t&EventInformation != 0:
		return LevelInformation
	case t&EventVerbose != 0:
		return LevelVerbose
	default:
		return LevelOff
	}
}

// IsActivity reports whether any activity boundary bit is set.
func (t EventType) IsActivity() bool {
	return t&EventActivityAll != 0
}

// String returns the names of the set bits joined by "|".
func (t EventType) String() string {
	if t == 0 {
		return "EventType(0)"
	}
	var b strings.Builder
	rest := t
	for _, e := range eventTypeNames {
		if rest&e.bit == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(e.name)
		rest &^= e.bit
	}
	if rest != 0 {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "EventType(%#x)", uint16(rest))
	}
	return b.String()
}

// ParseEventType converts an event type name to its bit. Matching is
// case-insensitive and accepts single names only, not masks. Returns an
// error wrapping ErrInvalidArgument for unknown names.
func ParseEventType(s string) (EventType, error) {
	for _, e := range eventTypeNames {
		if strings.EqualFold(s, e.name) {
			return e.bit, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown event type %q", ErrInvalidArgument, s)
}
