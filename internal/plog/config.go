// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plog

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"k8s.io/apimachinery/pkg/util/wait"

	"go.kubeldap.dev/internal/constable"
)

type LogFormat string

func (l *LogFormat) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `""`, `"json"`:
		*l = FormatJSON
	case `"cli"`:
		*l = FormatCLI
	default:
		return errInvalidLogFormat
	}
	return nil
}

const (
	FormatJSON LogFormat = "json"
	FormatCLI  LogFormat = "cli"

	errInvalidLogFormat = constable.Error("invalid log format, valid choices are the empty string, 'json' and 'cli'")
)

var _ json.Unmarshaler = func() *LogFormat {
	var f LogFormat
	return &f
}()

type LogSpec struct {
	Level  LogLevel  `json:"level,omitempty"`
	Format LogFormat `json:"format,omitempty"`
}

// ValidateLogSpec checks the spec without changing the global loggers.
func ValidateLogSpec(spec LogSpec) error {
	if klogLevelForPlogLevel(spec.Level) < 0 {
		return errInvalidLogLevel
	}
	switch spec.Format {
	case "", FormatJSON, FormatCLI:
		return nil
	default:
		return errInvalidLogFormat
	}
}

// ValidateAndSetLogLevelAndFormatGlobally replaces the global loggers according to spec. Buffered
// entries are flushed every minute until ctx is done.
func ValidateAndSetLogLevelAndFormatGlobally(ctx context.Context, spec LogSpec) error {
	if err := ValidateLogSpec(spec); err != nil {
		return err
	}

	klogLevel := klogLevelForPlogLevel(spec.Level)
	//nolint:gosec // the range for klogLevel is [0,108]
	globalLevel.SetLevel(zapcore.Level(-klogLevel)) // klog levels are inverted when zap handles them

	encoding := "json"
	if spec.Format == FormatCLI {
		encoding = "console"
	}

	log, flush := newLogr(os.Stderr, encoding, globalLevel)
	setGlobalLoggers(log, flush)

	go wait.UntilWithContext(ctx, func(_ context.Context) { flush() }, time.Minute)
	go func() {
		<-ctx.Done()
		flush() // best effort flush before shutdown as this is not coordinated with a wait group
	}()

	return nil
}
