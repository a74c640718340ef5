// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plog

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"k8s.io/utils/clock"
	clocktesting "k8s.io/utils/clock/testing"
)

// TestLogger replaces the global loggers with one that writes JSON lines without caller information
// into the returned buffer, using a static clock and logging at every level. The previous loggers are
// restored when the test ends. Tests which use it must not run in parallel.
func TestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	now, err := time.Parse(time.RFC3339Nano, "2099-08-08T13:57:36.123456789Z")
	require.NoError(t, err)

	previousLevel := globalLevel.Level()
	previousLogger, previousFlush := globalLogger, globalFlush
	t.Cleanup(func() {
		globalLevel.SetLevel(previousLevel)
		setGlobalLoggers(previousLogger, previousFlush)
	})

	globalLevel.SetLevel(math.MinInt8) // log everything during tests

	var buf bytes.Buffer
	log, flush := newLogr(&buf, "json", globalLevel,
		zap.WithCaller(false),
		zap.WithClock(ZapClock(clocktesting.NewFakeClock(now))),
	)
	setGlobalLoggers(log, flush)

	return &buf
}

var _ zapcore.Clock = &clockAdapter{}

type clockAdapter struct {
	clock clock.Clock
}

func (c *clockAdapter) Now() time.Time {
	return c.clock.Now()
}

func (c *clockAdapter) NewTicker(duration time.Duration) *time.Ticker {
	return &time.Ticker{C: c.clock.Tick(duration)}
}

func ZapClock(c clock.Clock) zapcore.Clock {
	return &clockAdapter{clock: c}
}
