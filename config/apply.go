// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/AntonVasilkovsky/tracekit/tracing"
	"github.com/AntonVasilkovsky/tracekit/tracing/celfilter"
)

// resolvedGate holds parsed switch settings. The has flags separate "set
// to the zero value" from "absent from the document".
type resolvedGate struct {
	level         tracing.Level
	hasLevel      bool
	activities    tracing.EventType
	hasActivities bool
}

func (g resolvedGate) apply(sw *tracing.SourceSwitch) {
	if g.hasLevel {
		sw.SetLevel(g.level)
	}
	if g.hasActivities {
		sw.SetActivities(g.activities)
	}
}

type resolvedSource struct {
	resolvedGate
	listeners []string
}

// settings is a validated, parsed configuration document, keyed for the
// lookups Configure performs.
type settings struct {
	sources  map[string]resolvedSource
	switches map[string]resolvedGate
}

func resolveGate(level string, activities []string) (resolvedGate, error) {
	var g resolvedGate
	if level != "" {
		l, err := tracing.ParseLevel(level)
		if err != nil {
			return g, err
		}
		g.level, g.hasLevel = l, true
	}
	if len(activities) > 0 {
		var mask tracing.EventType
		for _, name := range activities {
			bit, err := tracing.ParseEventType(name)
			if err != nil {
				return g, err
			}
			mask |= bit
		}
		g.activities, g.hasActivities = mask, true
	}
	return g, nil
}

// resolveSettings validates the document semantically and parses it
// into lookup form. It builds nothing: no files are opened and no
// listeners are constructed, so Load can call it to reject bad
// documents without side effects.
func resolveSettings(cfg *Config) (*settings, error) {
	shared := make(map[string]struct{}, len(cfg.SharedListeners))
	for _, lc := range cfg.SharedListeners {
		if _, dup := shared[lc.Name]; dup {
			return nil, fmt.Errorf("duplicate shared listener %q", lc.Name)
		}
		shared[lc.Name] = struct{}{}
		if lc.Filter != "" {
			if err := celfilter.Check(lc.Filter); err != nil {
				return nil, fmt.Errorf("listener %q: invalid filter: %w", lc.Name, err)
			}
		}
	}

	s := &settings{
		sources:  make(map[string]resolvedSource, len(cfg.Sources)),
		switches: make(map[string]resolvedGate, len(cfg.Switches)),
	}
	for _, sc := range cfg.Sources {
		if _, dup := s.sources[sc.Name]; dup {
			return nil, fmt.Errorf("duplicate source entry %q", sc.Name)
		}
		gate, err := resolveGate(sc.Level, sc.Activities)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", sc.Name, err)
		}
		for _, ref := range sc.Listeners {
			if _, ok := shared[ref]; !ok {
				return nil, fmt.Errorf("source %q references unknown listener %q", sc.Name, ref)
			}
		}
		s.sources[sc.Name] = resolvedSource{resolvedGate: gate, listeners: sc.Listeners}
	}
	for _, wc := range cfg.Switches {
		if _, dup := s.switches[wc.Name]; dup {
			return nil, fmt.Errorf("duplicate switch entry %q", wc.Name)
		}
		gate, err := resolveGate(wc.Level, wc.Activities)
		if err != nil {
			return nil, fmt.Errorf("switch %q: %w", wc.Name, err)
		}
		s.switches[wc.Name] = gate
	}
	return s, nil
}

// buildListeners constructs the shared listener instances in document
// order, wrapping filtered entries in a celfilter decorator. On failure
// every listener built so far is closed.
func buildListeners(cfg *Config) (map[string]tracing.Listener, error) {
	built := make(map[string]tracing.Listener, len(cfg.SharedListeners))
	for _, lc := range cfg.SharedListeners {
		factory, ok := factoryFor(lc.Type)
		if !ok {
			closeAll(built)
			return nil, fmt.Errorf("listener %q: unknown listener type %q", lc.Name, lc.Type)
		}
		l, err := factory(lc)
		if err != nil {
			closeAll(built)
			return nil, fmt.Errorf("listener %q: %w", lc.Name, err)
		}
		if lc.Filter != "" {
			flt, err := celfilter.New(lc.Filter, l)
			if err != nil {
				_ = l.Close()
				closeAll(built)
				return nil, fmt.Errorf("listener %q: %w", lc.Name, err)
			}
			l = flt
		}
		built[lc.Name] = l
	}
	return built, nil
}

func closeAll(listeners map[string]tracing.Listener) {
	for _, l := range listeners {
		_ = l.Close()
	}
}

// installer applies a resolved document to sources as they initialize
// and refresh.
type installer struct {
	settings  *settings
	listeners map[string]tracing.Listener
}

// Configure applies the source entry matching the source's name, then
// the switch entry matching the switch's name. Switch entries win where
// both set the same field, and they follow a switch that is shared or
// was swapped in through SetSwitch. A non-empty listener list replaces
// the collection with the named shared instances.
func (i *installer) Configure(source string, sw *tracing.SourceSwitch, listeners *tracing.Listeners) {
	if rs, ok := i.settings.sources[source]; ok {
		rs.apply(sw)
		if len(rs.listeners) > 0 {
			listeners.Clear()
			for _, name := range rs.listeners {
				_ = listeners.Add(i.listeners[name])
			}
		}
	}
	if gate, ok := i.settings.switches[sw.Name()]; ok {
		gate.apply(sw)
	}
}

// Install builds cfg's shared listeners, applies its process-wide trace
// settings and installs the document as the process configurator, then
// refreshes every live source so already-initialized ones re-read it.
// A previously installed document is replaced; listeners it built are
// not closed, since sources may still hold them.
func Install(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config", tracing.ErrNilArgument)
	}
	s, err := resolveSettings(cfg)
	if err != nil {
		return err
	}
	listeners, err := buildListeners(cfg)
	if err != nil {
		return err
	}

	tracing.SetAutoFlush(cfg.Trace.AutoFlush)
	if cfg.Trace.UseGlobalLock != nil {
		tracing.SetUseGlobalLock(*cfg.Trace.UseGlobalLock)
	}
	tracing.SetConfigurator(&installer{settings: s, listeners: listeners})
	tracing.RefreshAll()
	return nil
}

// Uninstall removes the installed configurator. Sources keep whatever
// configuration they already picked up; sources initialized afterward
// get defaults again.
func Uninstall() {
	tracing.SetConfigurator(nil)
}
