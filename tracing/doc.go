// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

/*
Package tracing broadcasts named, leveled diagnostic events to
pluggable listeners.

A Source is a named broadcast point. Components create package-level
sources and trace through them; a switch per source decides which
events pass, and the listeners attached to the source decide where they
go. Sources are cheap until first use: the switch and listener
collection are built lazily, so instrumentation in rarely-exercised
code paths costs one atomic load when tracing is off.

# Basic Usage

	var src = tracing.MustSource("app.http",
		tracing.WithInitialLevel(tracing.LevelInformation))

	func handle() {
		src.TraceInformation("request accepted")
		src.TraceEventf(tracing.EventError, 4021, "backend %s unreachable", host)
		src.TraceData(tracing.EventVerbose, 0, hdr, body)
	}

Every source starts with a single listener writing text lines to
standard error. Replace or extend the collection through Listeners:

	src.Listeners().Clear()
	_ = src.Listeners().Add(tracing.NewConsoleListener("console"))

# Gating

A SourceSwitch admits an event when the event's severity is within the
switch's level, or when the event's type is in the switch's activity
mask. LevelOff suppresses everything. Suppressed events cost no
formatting, no allocation and no listener work.

# Locking

Delivery order inside one broadcast is always the collection order. How
concurrent broadcasts interleave is a process-wide choice made with
SetUseGlobalLock: under the default global lock, all broadcasts from
all sources serialize and listeners see a total order; without it, only
individual non-thread-safe listeners are locked, and independent
listeners receive events concurrently.

# Configuration

SetConfigurator installs a hook that is applied to each source during
lazy initialization and again on Refresh or RefreshAll. The config
package builds such a hook from a declarative file. The process-wide
source registry behind RefreshAll holds weak references only; it never
keeps an otherwise unreachable source alive.
*/
package tracing
