// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment
variable access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("TRACEKIT_CONFIG")

# Testing

The Reader interface allows injecting a mock in tests to avoid relying
on real environment variables. A generated mock is available in the
mocks sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().Getenv("TRACEKIT_CONFIG").Return("test-value")

	result := myFunc(mock)

# Design

Production code that depends on the environment, such as configuration
path discovery and locale selection, accepts an env.Reader; tests
substitute the generated mock.
*/
package env
