// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plog

const errorKey = "error"

// Error logs an unexpected system error.
func Error(msg string, err error, keysAndValues ...any) {
	globalLogger.WithCallDepth(1).Error(err, msg, keysAndValues...)
}

func Warning(msg string, keysAndValues ...any) {
	// logr has no concept of a warning, so use info at level zero and mark the entry instead.
	warning(msg, keysAndValues...)
}

// WarningErr issues a Warning message with an error object as part of the message.
func WarningErr(msg string, err error, keysAndValues ...any) {
	warning(msg, append([]any{errorKey, err}, keysAndValues...)...)
}

func warning(msg string, keysAndValues ...any) {
	keysAndValues = append([]any{"warning", true}, keysAndValues...)
	globalLogger.WithCallDepth(2).V(klogLevelWarning).Info(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	logAt(klogLevelInfo, msg, keysAndValues...)
}

// InfoErr logs an expected error, e.g. validation failure of an http parameter.
func InfoErr(msg string, err error, keysAndValues ...any) {
	logAt(klogLevelInfo, msg, append([]any{errorKey, err}, keysAndValues...)...)
}

func Debug(msg string, keysAndValues ...any) {
	logAt(klogLevelDebug, msg, keysAndValues...)
}

// DebugErr issues a Debug message with an error object as part of the message.
func DebugErr(msg string, err error, keysAndValues ...any) {
	logAt(klogLevelDebug, msg, append([]any{errorKey, err}, keysAndValues...)...)
}

func Trace(msg string, keysAndValues ...any) {
	logAt(klogLevelTrace, msg, keysAndValues...)
}

// TraceErr issues a Trace message with an error object as part of the message.
func TraceErr(msg string, err error, keysAndValues ...any) {
	logAt(klogLevelTrace, msg, append([]any{errorKey, err}, keysAndValues...)...)
}

func All(msg string, keysAndValues ...any) {
	logAt(klogLevelAll, msg, keysAndValues...)
}

// Always logs at level zero without the warning marker, for startup and shutdown messages.
func Always(msg string, keysAndValues ...any) {
	logAt(klogLevelWarning, msg, keysAndValues...)
}

func logAt(level int, msg string, keysAndValues ...any) {
	globalLogger.WithCallDepth(2).V(level).Info(msg, keysAndValues...)
}
