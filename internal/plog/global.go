// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plog

import (
	"os"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"k8s.io/klog/v2"
)

//nolint:gochecknoglobals
var (
	// these globals have no locks on purpose, they are set at init and then again after config parsing.
	globalLevel  zap.AtomicLevel
	globalLogger logr.Logger
	globalFlush  func()
)

//nolint:gochecknoinits
func init() {
	// make sure we always have a functional global logger
	globalLevel = zap.NewAtomicLevelAt(0) // log at the 0 verbosity level to start with, i.e. the "always" logs
	log, flush := newLogr(os.Stderr, "json", globalLevel)
	setGlobalLoggers(log, flush)
}

// Logr returns the global logger for libraries which need a logr.Logger.
func Logr() logr.Logger {
	return globalLogger
}

// Flush writes any buffered log entries.
func Flush() {
	globalFlush()
}

// setGlobalLoggers sets the plog and klog global loggers. It is *not* go routine safe.
func setGlobalLoggers(log logr.Logger, flush func()) {
	// a contextual logger does its own level based enablement checks, which is true for all of our loggers
	klog.SetLoggerWithOptions(log, klog.ContextualLogger(true), klog.FlushLogger(flush))
	globalLogger = log
	globalFlush = flush
}
