// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EventContext is the per-dispatch snapshot handed to every listener of
// one broadcast. It is built after the gate admits the event and is
// discarded when the fan-out returns; listeners must copy what they
// need instead of retaining the pointer.
type EventContext struct {
	// Time is the wall-clock instant the event was dispatched.
	Time time.Time

	// ProcessID is the id of the current process.
	ProcessID int

	// Seq is a process-wide sequence number. It increases with every
	// admitted event across all sources and never repeats.
	Seq uint64

	// ActivityID is the ambient activity at dispatch time, uuid.Nil
	// when none is set.
	ActivityID uuid.UUID
}

var (
	processID = os.Getpid()

	eventSeq atomic.Uint64

	// ambientActivity holds a uuid.UUID.
	ambientActivity atomic.Value
)

func newEventContext() *EventContext {
	return &EventContext{
		Time:       time.Now(),
		ProcessID:  processID,
		Seq:        eventSeq.Add(1),
		ActivityID: ActivityID(),
	}
}

// SetActivityID sets the process-wide ambient activity recorded in
// every subsequent event context. Set it to uuid.Nil to clear. Related
// work spread across components tags its events with one activity id so
// that consumers can correlate them.
func SetActivityID(id uuid.UUID) {
	ambientActivity.Store(id)
}

// ActivityID returns the current ambient activity, uuid.Nil when none
// has been set.
func ActivityID() uuid.UUID {
	if v := ambientActivity.Load(); v != nil {
		return v.(uuid.UUID)
	}
	return uuid.Nil
}
