// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package sr

// Message keys. Nil-argument keys resolve to the name of the offending
// parameter; the caller's sentinel supplies the rest of the sentence.
const (
	SourceNameEmpty Key = "SourceNameEmpty"
	PathEmpty       Key = "PathEmpty"
	ChannelEmpty    Key = "ChannelEmpty"
	ExpressionEmpty Key = "ExpressionEmpty"
	SwitchNil       Key = "SwitchNil"
	ListenerNil     Key = "ListenerNil"
	WriterNil       Key = "WriterNil"
	ClientNil       Key = "ClientNil"
	LoggerNil       Key = "LoggerNil"
	MeterNil        Key = "MeterNil"
)

var english = map[Key]string{
	SourceNameEmpty: "source name must not be empty",
	PathEmpty:       "file path must not be empty",
	ChannelEmpty:    "channel name must not be empty",
	ExpressionEmpty: "filter expression must not be empty",
	SwitchNil:       "switch",
	ListenerNil:     "listener",
	WriterNil:       "writer",
	ClientNil:       "redis client",
	LoggerNil:       "logger",
	MeterNil:        "meter",
}
