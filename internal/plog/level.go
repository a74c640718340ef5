// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plog

import (
	"go.uber.org/zap/zapcore"

	"go.kubeldap.dev/internal/constable"
)

// LogLevel is an enum that controls verbosity of logs.
// Valid values in order of increasing verbosity are leaving it unset, info, debug, trace and all.
type LogLevel string

const (
	// LevelWarning (i.e. leaving the log level unset) maps to klog log level 0.
	LevelWarning LogLevel = ""
	// LevelInfo maps to klog log level 2.
	LevelInfo LogLevel = "info"
	// LevelDebug maps to klog log level 4.
	LevelDebug LogLevel = "debug"
	// LevelTrace maps to klog log level 6.
	LevelTrace LogLevel = "trace"
	// LevelAll maps to klog log level 108.
	LevelAll LogLevel = "all"

	errInvalidLogLevel = constable.Error("invalid log level, valid choices are the empty string, info, debug, trace and all")
)

const (
	klogLevelWarning = iota * 2
	klogLevelInfo
	klogLevelDebug
	klogLevelTrace
	klogLevelAll
)

// klogLevelForPlogLevel returns -1 for unknown levels.
func klogLevelForPlogLevel(level LogLevel) int {
	switch level {
	case LevelWarning:
		return klogLevelWarning // unset means minimal logs (Error and Warning)
	case LevelInfo:
		return klogLevelInfo
	case LevelDebug:
		return klogLevelDebug
	case LevelTrace:
		return klogLevelTrace
	case LevelAll:
		return klogLevelAll + 100 // make all really mean all
	default:
		return -1
	}
}

// Enabled reports whether logs at the given level are currently emitted.
func Enabled(level LogLevel) bool {
	l := klogLevelForPlogLevel(level)
	if l < 0 {
		return false
	}
	if level == LevelAll {
		l = klogLevelAll
	}
	return globalLevel.Enabled(zapcore.Level(-l))
}

func zapLevelToPlogLevel(l zapcore.Level) string {
	if l > 0 {
		// warn, error, etc. are only produced by logr's Error which always maps to zap's error level
		return l.String()
	}

	// klog levels are inverted when zap handles them
	switch {
	case -l >= klogLevelAll:
		return string(LevelAll)
	case -l >= klogLevelTrace:
		return string(LevelTrace)
	case -l >= klogLevelDebug:
		return string(LevelDebug)
	default:
		return string(LevelInfo) // warnings are distinguished by a custom key since level 0 is ambiguous
	}
}
