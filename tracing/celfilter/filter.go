// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

// Package celfilter gates a listener behind a CEL expression evaluated
// per event, so one source can fan out to several sinks with different
// views of the stream.
//
// Expressions see the event through five variables: source and message
// (strings), eventType (the event type's string form), severity (the
// numeric level rank, 1 for Critical through 5 for Verbose, 0 for
// activity-only events) and id. The expression must evaluate to a
// boolean; true delivers the event to the wrapped listener.
//
//	audit, _ := tracing.NewFileListener("audit", path)
//	flt, err := celfilter.New(`severity <= 2 || eventType == "Start"`, audit)
//
// Expression errors are caught at construction. A runtime evaluation
// failure fails open and delivers the event: a broken filter must not
// hide diagnostics.
package celfilter

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/AntonVasilkovsky/tracekit/internal/sr"
	"github.com/AntonVasilkovsky/tracekit/tracing"
)

// Variables available to filter expressions.
const (
	VarSource    = "source"
	VarEventType = "eventType"
	VarSeverity  = "severity"
	VarID        = "id"
	VarMessage   = "message"
)

const (
	// maxExpressionLength bounds filter expressions; longer ones are
	// rejected during compilation.
	maxExpressionLength = 4096

	// evaluationCostLimit bounds the runtime cost of one evaluation.
	evaluationCostLimit = 1_000_000
)

// filterEnv holds the lazily-built CEL environment shared by every
// filter.
var filterEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable(VarSource, cel.StringType),
		cel.Variable(VarEventType, cel.StringType),
		cel.Variable(VarSeverity, cel.IntType),
		cel.Variable(VarID, cel.IntType),
		cel.Variable(VarMessage, cel.StringType),
	)
})

// Listener wraps another listener behind a compiled filter expression.
// Locking, naming, thread safety, Flush and Close all delegate to the
// wrapped listener, so a filtered listener behaves like the original
// one in every way except event admission.
type Listener struct {
	next    tracing.Listener
	program cel.Program
	expr    string
}

// New compiles expr and wraps next behind it. Returns an error wrapping
// tracing.ErrNilArgument or tracing.ErrInvalidArgument for bad
// arguments, a ParseError for syntax errors, a CheckError for type
// errors, and ErrNotBool when the expression result is not a boolean.
func New(expr string, next tracing.Listener) (*Listener, error) {
	if next == nil {
		return nil, fmt.Errorf("%w: %s", tracing.ErrNilArgument, sr.Text(sr.ListenerNil))
	}
	program, err := compile(expr)
	if err != nil {
		return nil, err
	}
	return &Listener{next: next, program: program, expr: expr}, nil
}

// Check compiles expr and reports the error New would return for it,
// without constructing a filter. Configuration loaders use it to reject
// bad expressions before any listener exists.
func Check(expr string) error {
	_, err := compile(expr)
	return err
}

func compile(expr string) (cel.Program, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: %s", tracing.ErrInvalidArgument, sr.Text(sr.ExpressionEmpty))
	}
	if len(expr) > maxExpressionLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), maxExpressionLength)
	}

	env, err := filterEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter environment: %w", err)
	}

	parsedAst, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, newParseError(expr, issues)
	}

	checkedAst, issues := env.Check(parsedAst)
	if issues.Err() != nil {
		return nil, newCheckError(expr, issues)
	}
	if !checkedAst.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q evaluates to %s", ErrNotBool, expr, checkedAst.OutputType())
	}

	program, err := env.Program(checkedAst, cel.CostLimit(evaluationCostLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create filter program for %q: %w", expr, err)
	}
	return program, nil
}

// Expr returns the filter's expression source.
func (l *Listener) Expr() string { return l.expr }

// Next returns the wrapped listener.
func (l *Listener) Next() tracing.Listener { return l.next }

// pass evaluates the filter for one event, failing open on evaluation
// errors.
func (l *Listener) pass(source string, t tracing.EventType, id int, message string) bool {
	out, _, err := l.program.Eval(map[string]any{
		VarSource:    source,
		VarEventType: t.String(),
		VarSeverity:  int64(t.Severity()),
		VarID:        int64(id),
		VarMessage:   message,
	})
	if err != nil {
		return true
	}
	pass, ok := out.Value().(bool)
	return !ok || pass
}

// Name returns the wrapped listener's name.
func (l *Listener) Name() string { return l.next.Name() }

// IsThreadSafe reports the wrapped listener's thread safety.
func (l *Listener) IsThreadSafe() bool { return l.next.IsThreadSafe() }

// Lock locks the wrapped listener.
func (l *Listener) Lock() { l.next.Lock() }

// Unlock unlocks the wrapped listener.
func (l *Listener) Unlock() { l.next.Unlock() }

// TraceEvent delivers the event to the wrapped listener when the
// filter passes.
func (l *Listener) TraceEvent(ec *tracing.EventContext, source string, t tracing.EventType, id int, message string) {
	if l.pass(source, t, id, message) {
		l.next.TraceEvent(ec, source, t, id, message)
	}
}

// TraceData delivers the data event to the wrapped listener when the
// filter passes. The expression's message variable sees the payload
// rendered through tracing.FormatData.
func (l *Listener) TraceData(ec *tracing.EventContext, source string, t tracing.EventType, id int, data ...any) {
	if l.pass(source, t, id, tracing.FormatData(data...)) {
		l.next.TraceData(ec, source, t, id, data...)
	}
}

// Flush flushes the wrapped listener.
func (l *Listener) Flush() { l.next.Flush() }

// Close closes the wrapped listener.
func (l *Listener) Close() error { return l.next.Close() }
