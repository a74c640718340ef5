// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"slices"

	"github.com/felixge/httpsnoop"

	"go.kubeldap.dev/internal/auditid"
	"go.kubeldap.dev/internal/httputil/requestutil"
	"go.kubeldap.dev/internal/metrics"
	"go.kubeldap.dev/internal/plog"
)

func internalPaths() []string {
	return []string{
		"/healthz",
		"/metrics",
	}
}

// withRequestLogging logs one line per completed request and records it in the metrics. Requests
// to internal paths are only logged at debug level.
func withRequestLogging(handler http.Handler, recorder metrics.Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(handler, w, r)

		path := r.URL.Path
		if !knownPath(path) {
			// keep the label cardinality bounded
			path = "other"
		}
		recorder.RecordRequest(path, m.Code, m.Duration)

		keysAndValues := []any{
			"auditID", auditid.FromContext(r.Context()),
			"proto", r.Proto,
			"scheme", requestutil.Scheme(r),
			"method", r.Method,
			"host", r.Host,
			"serverName", requestutil.SNIServerName(r),
			"path", r.URL.Path,
			"userAgent", r.UserAgent(),
			"remoteAddr", r.RemoteAddr,
			"responseStatus", m.Code,
			"latency", m.Duration.String(),
		}
		if slices.Contains(internalPaths(), r.URL.Path) {
			plog.Debug("HTTP request completed", keysAndValues...)
			return
		}
		plog.Info("HTTP request completed", keysAndValues...)
	})
}
