// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

/*
Package config wires tracing sources, switches and listeners from a
declarative file, so deployments can re-route and re-level diagnostics
without a rebuild.

# File format

Configuration is YAML or TOML, chosen by file extension:

	trace:
	  autoflush: true
	  useGlobalLock: false
	sharedListeners:
	  - name: console
	    type: console
	  - name: audit
	    type: file
	    path: /var/log/app.events
	    filter: 'severity <= 2'
	sources:
	  - name: app.http
	    level: information
	    activities: [start, stop]
	    listeners: [console, audit]
	switches:
	  - name: app.http
	    level: warning

sharedListeners declares named listener instances built through the
listener type registry; entries with a filter are wrapped in a
celfilter decorator. Listener instances are shared: two sources naming
the same listener deliver to one instance. sources assigns a level, an
activity mask and a listener set to every source with a matching name.
switches overrides switch settings by switch name, which covers
switches shared between sources. Unknown document fields are rejected,
and the decoded document is validated against an embedded JSON schema
before any of it is applied.

# Applying

Install builds the shared listeners, applies the process-wide trace
settings and installs the document as the process configurator:

	cfg, err := config.LoadDefault()
	if err != nil { ... }
	if err := config.Install(cfg); err != nil { ... }

Sources pick their entry up during lazy initialization; Install also
calls tracing.RefreshAll so that already-initialized sources re-read
the document. Sources without a matching entry keep their defaults.

# Discovery

LoadDefault reads the path from the TRACEKIT_CONFIG environment
variable, falling back to tracing.yaml under the XDG configuration
directory for tracekit.

# Custom listener types

RegisterListenerType extends the type registry beyond the built-in
default, console, file and ring types:

	config.RegisterListenerType("syslog", func(c config.ListenerConfig) (tracing.Listener, error) {
		return newSyslogListener(c.Name, c.Path)
	})
*/
package config
