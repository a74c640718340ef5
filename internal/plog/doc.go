// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package plog implements a thin layer over logr/zap to enforce kube-ldap's logging convention.
// Logs are always structured as a constant message with key and value pairs of related metadata.
//
// The logging levels in order of increasing verbosity are:
// error, warning, info, debug, trace and all.
//
// error and warning logs are always emitted and should be used sparingly.
//
// info should be reserved for "nice to know" information. It must be possible to run kube-ldap
// at the info level in production.
//
// debug is targeted at developers and support cases. Debug logs may explain why an authentication
// attempt failed, but they must never contain a password, and they must not contain a username
// unless it has been confirmed to exist in the directory.
//
// trace is for timing related information.
//
// all is reserved for the most verbose and security sensitive information, such as usernames which
// may turn out to be mistyped passwords. It is unfit for production use.
package plog
