// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

// Package redispub publishes trace events to a Redis channel so that
// other processes can subscribe to a live event feed.
package redispub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
	"github.com/AntonVasilkovsky/tracekit/tracing"
)

// Event is the JSON document published for each trace event.
type Event struct {
	Time       time.Time `json:"time"`
	Seq        uint64    `json:"seq"`
	ProcessID  int       `json:"pid"`
	ActivityID string    `json:"activityId,omitempty"`
	Source     string    `json:"source"`
	EventType  string    `json:"eventType"`
	ID         int       `json:"id"`
	Message    string    `json:"message,omitempty"`
	Data       []string  `json:"data,omitempty"`
}

// Listener publishes each event with a synchronous PUBLISH; nothing is
// queued, so an event a subscriber receives was fully delivered by the
// time the trace call returned. Publish failures are dropped: a trace
// call has no error channel, and a diagnostics feed must not take the
// application down with it.
type Listener struct {
	sync.Mutex
	client  redis.UniversalClient
	channel string
	closed  atomic.Bool
}

// New creates a listener publishing to channel through client. The
// client is borrowed and stays open after Close. Returns an error
// wrapping tracing.ErrNilArgument or tracing.ErrInvalidArgument when
// client is nil or channel is empty.
func New(client redis.UniversalClient, channel string) (*Listener, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: %s", tracing.ErrNilArgument, sr.Text(sr.ClientNil))
	}
	if channel == "" {
		return nil, fmt.Errorf("%w: %s", tracing.ErrInvalidArgument, sr.Text(sr.ChannelEmpty))
	}
	return &Listener{client: client, channel: channel}, nil
}

// Name returns the channel name.
func (l *Listener) Name() string { return l.channel }

// IsThreadSafe reports true; the Redis client is safe for concurrent
// use.
func (*Listener) IsThreadSafe() bool { return true }

func (l *Listener) publish(ev *Event) {
	if l.closed.Load() {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_ = l.client.Publish(context.Background(), l.channel, payload).Err()
}

func newEvent(ec *tracing.EventContext, source string, t tracing.EventType, id int) *Event {
	ev := &Event{
		Time:      ec.Time,
		Seq:       ec.Seq,
		ProcessID: ec.ProcessID,
		Source:    source,
		EventType: t.String(),
		ID:        id,
	}
	if ec.ActivityID != uuid.Nil {
		ev.ActivityID = ec.ActivityID.String()
	}
	return ev
}

// TraceEvent publishes a message event.
func (l *Listener) TraceEvent(ec *tracing.EventContext, source string, t tracing.EventType, id int, message string) {
	ev := newEvent(ec, source, t, id)
	ev.Message = message
	l.publish(ev)
}

// TraceData publishes a data event with each value rendered to a
// string.
func (l *Listener) TraceData(ec *tracing.EventContext, source string, t tracing.EventType, id int, data ...any) {
	ev := newEvent(ec, source, t, id)
	ev.Data = make([]string, len(data))
	for i, d := range data {
		ev.Data[i] = fmt.Sprint(d)
	}
	l.publish(ev)
}

// Flush is a no-op; every event is published synchronously.
func (*Listener) Flush() {}

// Close stops publishing. The Redis client is not closed.
func (l *Listener) Close() error {
	l.closed.Store(true)
	return nil
}
