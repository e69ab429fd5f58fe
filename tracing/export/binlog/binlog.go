// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

// Package binlog writes trace events as length-prefixed MessagePack
// records, a compact machine-readable event log for offline analysis.
// Each record is a big-endian uint32 payload length followed by the
// MessagePack encoding of a Record; ReadRecord decodes one record from
// a stream.
package binlog

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"fortio.org/safecast"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
	"github.com/AntonVasilkovsky/tracekit/tracing"
)

// Record is the wire form of one trace event.
type Record struct {
	Time       time.Time `msgpack:"time"`
	Seq        uint64    `msgpack:"seq"`
	ProcessID  int       `msgpack:"pid"`
	ActivityID string    `msgpack:"activityId,omitempty"`
	Source     string    `msgpack:"source"`
	EventType  uint16    `msgpack:"eventType"`
	ID         int       `msgpack:"id"`
	Message    string    `msgpack:"message,omitempty"`
	Data       []string  `msgpack:"data,omitempty"`
}

// Listener encodes events onto a borrowed writer. It is not internally
// synchronized; the dispatch path serializes it through the embedded
// mutex, which also keeps records from interleaving when several
// sources share one listener.
type Listener struct {
	sync.Mutex
	name   string
	w      io.Writer
	closed atomic.Bool
}

// New creates a listener encoding to w. The writer is borrowed and
// stays open after Close. Returns an error wrapping
// tracing.ErrNilArgument when w is nil.
func New(name string, w io.Writer) (*Listener, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: %s", tracing.ErrNilArgument, sr.Text(sr.WriterNil))
	}
	return &Listener{name: name, w: w}, nil
}

// Name returns the listener's name.
func (l *Listener) Name() string { return l.name }

// IsThreadSafe reports false: the dispatch path must serialize this
// listener.
func (*Listener) IsThreadSafe() bool { return false }

func (l *Listener) write(rec *Record) {
	if l.closed.Load() {
		return
	}
	payload, err := msgpack.Marshal(rec)
	if err != nil {
		return
	}
	size, err := safecast.Conv[uint32](len(payload))
	if err != nil {
		return
	}
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], size)
	if _, err := l.w.Write(prefix[:]); err != nil {
		return
	}
	_, _ = l.w.Write(payload)
}

func (l *Listener) newRecord(ec *tracing.EventContext, source string, t tracing.EventType, id int) *Record {
	rec := &Record{
		Time:      ec.Time,
		Seq:       ec.Seq,
		ProcessID: ec.ProcessID,
		Source:    source,
		EventType: uint16(t),
		ID:        id,
	}
	if ec.ActivityID != uuid.Nil {
		rec.ActivityID = ec.ActivityID.String()
	}
	return rec
}

// TraceEvent writes a message record.
func (l *Listener) TraceEvent(ec *tracing.EventContext, source string, t tracing.EventType, id int, message string) {
	rec := l.newRecord(ec, source, t, id)
	rec.Message = message
	l.write(rec)
}

// TraceData writes a data record with each value rendered to a string.
func (l *Listener) TraceData(ec *tracing.EventContext, source string, t tracing.EventType, id int, data ...any) {
	rec := l.newRecord(ec, source, t, id)
	rec.Data = make([]string, len(data))
	for i, d := range data {
		rec.Data[i] = fmt.Sprint(d)
	}
	l.write(rec)
}

// Flush forwards to the writer when it buffers.
func (l *Listener) Flush() {
	if l.closed.Load() {
		return
	}
	if f, ok := l.w.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

// Close stops encoding and flushes the writer if it buffers. The
// writer itself stays open. Close is idempotent.
func (l *Listener) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	if f, ok := l.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// ReadRecord decodes one length-prefixed record from r. It returns
// io.EOF at a clean end of stream and io.ErrUnexpectedEOF for a
// truncated record.
func ReadRecord(r io.Reader) (*Record, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, err
	}
	payload := make([]byte, binary.BigEndian.Uint32(prefix[:]))
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	var rec Record
	if err := msgpack.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}
