// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

/*
Package logbridge forwards trace events into structured logging
backends, so components instrumented with tracing sources land in the
same stream as the rest of an application's logs.

Three bridges are provided: NewZapListener for go.uber.org/zap,
NewLogrListener for go-logr, and NewSlogListener for log/slog. Each
maps event severities onto the backend's levels (Critical and Error to
the error level, Warning to warn, Information to info, Verbose to the
debug or high-verbosity level) and attaches the source name, event
type, event id and sequence number as structured fields. Activity
boundary events log at the info level.

The bridges rely on their backends' own synchronization and report
IsThreadSafe true, so the dispatch path never locks around them.

	logger, _ := zap.NewProduction()
	zl, _ := logbridge.NewZapListener(logger)
	_ = src.Listeners().Add(zl)
*/
package logbridge
