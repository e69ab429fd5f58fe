// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"runtime/metrics"
	"sync"
	"weak"
)

const gcCyclesMetric = "/gc/cycles/total:gc-cycles"

// sourceRegistry tracks every constructed source through weak pointers
// so that RefreshAll can reach the live ones. Entries whose source has
// been collected are pruned opportunistically: pruning scans the slice
// only when the runtime's GC cycle counter has advanced since the last
// scan, so registering sources in a quiet period stays cheap.
type sourceRegistry struct {
	mu       sync.Mutex
	entries  []weak.Pointer[Source]
	gcCycles uint64
}

var sources sourceRegistry

func totalGCCycles() uint64 {
	sample := []metrics.Sample{{Name: gcCyclesMetric}}
	metrics.Read(sample)
	return sample[0].Value.Uint64()
}

func (r *sourceRegistry) add(s *Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	r.entries = append(r.entries, weak.Make(s))
}

// pruneLocked drops entries whose source has been collected. Callers
// must hold r.mu.
func (r *sourceRegistry) pruneLocked() {
	cycles := totalGCCycles()
	if cycles == r.gcCycles {
		return
	}
	live := r.entries[:0]
	for _, e := range r.entries {
		if e.Value() != nil {
			live = append(live, e)
		}
	}
	r.entries = live
	r.gcCycles = cycles
}

// refreshAll prunes dead entries and refreshes every source still
// alive.
func (r *sourceRegistry) refreshAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	for _, e := range r.entries {
		if s := e.Value(); s != nil {
			s.Refresh()
		}
	}
}

// RefreshAll re-applies external configuration to every live source in
// the process, initializing sources that were never touched. Dead
// registry entries are pruned along the way. Typically called after
// SetConfigurator installs new configuration.
func RefreshAll() {
	sources.refreshAll()
}
