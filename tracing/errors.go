// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package tracing

import "errors"

// Sentinel errors for argument validation. They are always returned
// wrapped with context, so match them with errors.Is.
var (
	// ErrNilArgument is returned when a required reference argument
	// is nil.
	ErrNilArgument = errors.New("argument must not be nil")

	// ErrInvalidArgument is returned when an argument value is
	// outside its valid domain.
	ErrInvalidArgument = errors.New("invalid argument")
)
