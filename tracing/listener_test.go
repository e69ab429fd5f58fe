// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonVasilkovsky/tracekit/tracing"
)

func TestListenersAdd(t *testing.T) {
	t.Parallel()

	var ls tracing.Listeners
	assert.Equal(t, 0, ls.Len())

	a := tracing.NewRingListener("a", 4)
	b := tracing.NewRingListener("b", 4)
	require.NoError(t, ls.Add(a))
	require.NoError(t, ls.Add(b))

	require.Equal(t, 2, ls.Len())
	assert.Same(t, a, ls.At(0))
	assert.Same(t, b, ls.At(1))
}

func TestListenersAddNil(t *testing.T) {
	t.Parallel()

	var ls tracing.Listeners
	err := ls.Add(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, tracing.ErrNilArgument)
	assert.Equal(t, 0, ls.Len())
}

func TestListenersRemove(t *testing.T) {
	t.Parallel()

	var buf1, buf2 bytes.Buffer
	first := tracing.NewWriterListener("dup", &buf1)
	second := tracing.NewWriterListener("dup", &buf2)
	other := tracing.NewRingListener("other", 4)

	var ls tracing.Listeners
	require.NoError(t, ls.Add(first))
	require.NoError(t, ls.Add(other))
	require.NoError(t, ls.Add(second))

	// Only the first listener with the name goes.
	assert.True(t, ls.Remove("dup"))
	require.Equal(t, 2, ls.Len())
	assert.Same(t, other, ls.At(0))
	assert.Same(t, second, ls.At(1))

	assert.True(t, ls.Remove("dup"))
	assert.Equal(t, 1, ls.Len())

	assert.False(t, ls.Remove("missing"))
	assert.Equal(t, 1, ls.Len())
}

func TestListenersClear(t *testing.T) {
	t.Parallel()

	var ls tracing.Listeners
	require.NoError(t, ls.Add(tracing.NewRingListener("a", 4)))
	require.NoError(t, ls.Add(tracing.NewRingListener("b", 4)))

	ls.Clear()
	assert.Equal(t, 0, ls.Len())
}

func TestFormatData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []any
		want string
	}{
		{name: "empty", data: nil, want: ""},
		{name: "single string", data: []any{"hello"}, want: "hello"},
		{name: "single int", data: []any{7}, want: "7"},
		{name: "mixed values", data: []any{1, "two", true}, want: "1, two, true"},
		{name: "nil value", data: []any{nil}, want: "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tracing.FormatData(tt.data...))
		})
	}
}
