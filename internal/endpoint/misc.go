// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"net/http"
	"os"

	"go.kubeldap.dev/internal/httputil/httperr"
	"go.kubeldap.dev/internal/plog"
)

// NewHealthzHandler reports that the process is serving.
func NewHealthzHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("OK"))
	})
}

// NewCACertHandler serves the file at path, which is read again for every request. It responds
// 404 when the path is empty or the file cannot be read.
func NewCACertHandler(path string) http.Handler {
	return httperr.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		if path == "" {
			return httperr.New(http.StatusNotFound, "no ca certificate configured")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			plog.WarningErr("could not read ca certificate", err, "path", path)
			return httperr.New(http.StatusNotFound, "ca certificate not available")
		}
		w.Header().Set("Content-Type", "application/x-pem-file")
		_, _ = w.Write(data)
		return nil
	})
}
