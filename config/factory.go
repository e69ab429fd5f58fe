// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"sync"

	"github.com/AntonVasilkovsky/tracekit/tracing"
)

// ListenerFactory builds a listener from its configuration entry. The
// entry's Name becomes the listener's name; factories read whichever
// other fields their type needs.
type ListenerFactory func(lc ListenerConfig) (tracing.Listener, error)

var (
	factoryMu sync.RWMutex
	factories = map[string]ListenerFactory{
		"default": newStderrListener,
		"console": newConsoleListener,
		"file":    newFileListener,
		"ring":    newRingListener,
	}
)

// RegisterListenerType makes a listener type available to configuration
// documents under the given name. Register custom types before loading
// configuration that references them, typically from an init function.
// Panics if the name is empty, the factory is nil or the name is
// already taken.
func RegisterListenerType(name string, factory ListenerFactory) {
	if name == "" {
		panic("config: RegisterListenerType with empty name")
	}
	if factory == nil {
		panic("config: RegisterListenerType with nil factory")
	}
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, dup := factories[name]; dup {
		panic("config: RegisterListenerType called twice for type " + name)
	}
	factories[name] = factory
}

func factoryFor(name string) (ListenerFactory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

func newStderrListener(lc ListenerConfig) (tracing.Listener, error) {
	return tracing.NewWriterListener(lc.Name, os.Stderr), nil
}

func newConsoleListener(lc ListenerConfig) (tracing.Listener, error) {
	return tracing.NewConsoleListener(lc.Name), nil
}

func newFileListener(lc ListenerConfig) (tracing.Listener, error) {
	return tracing.NewFileListener(lc.Name, lc.Path)
}

func newRingListener(lc ListenerConfig) (tracing.Listener, error) {
	return tracing.NewRingListener(lc.Name, lc.Capacity), nil
}
