// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package metrics exposes Prometheus metrics about authentication requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kube_ldap"

// Result labels for authentication attempts.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// Recorder records what the endpoints did.
type Recorder interface {
	RecordAuthentication(result string)
	RecordTokenReview(authenticated bool)
	RecordRequest(path string, code int, duration time.Duration)
}

var (
	_ Recorder = (*Metrics)(nil)
	_ Recorder = Noop{}
)

type Metrics struct {
	registry *prometheus.Registry

	AuthenticationsTotal *prometheus.CounterVec
	TokenReviewsTotal    *prometheus.CounterVec
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// New returns Metrics registered on their own registry, together with the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AuthenticationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "authentications_total",
				Help:      "Total number of credential verifications by result",
			},
			[]string{"result"},
		),
		TokenReviewsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_reviews_total",
				Help:      "Total number of token reviews by outcome",
			},
			[]string{"authenticated"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"path", "code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.AuthenticationsTotal,
		m.TokenReviewsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordAuthentication(result string) {
	m.AuthenticationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordTokenReview(authenticated bool) {
	m.TokenReviewsTotal.WithLabelValues(strconv.FormatBool(authenticated)).Inc()
}

func (m *Metrics) RecordRequest(path string, code int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// Noop is used when metrics are disabled.
type Noop struct{}

func (Noop) RecordAuthentication(string) {}

func (Noop) RecordTokenReview(bool) {}

func (Noop) RecordRequest(string, int, time.Duration) {}
