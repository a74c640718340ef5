// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package requestutil contains helpers to describe incoming requests in logs.
package requestutil

import "net/http"

// SNIServerName returns the server name the client asked for during the TLS handshake, if any.
func SNIServerName(req *http.Request) string {
	name := ""
	if req.TLS != nil {
		name = req.TLS.ServerName
	}
	return name
}

// Scheme returns "https" for requests received over TLS and "http" otherwise.
func Scheme(req *http.Request) string {
	if req.TLS != nil {
		return "https"
	}
	return "http"
}
