// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package httperr contains some helpers for nicer error handling in http.Handler implementations.
package httperr

import (
	"fmt"
	"net/http"

	"go.kubeldap.dev/internal/plog"
)

// Responder represents an error that can emit a useful HTTP error response to an http.ResponseWriter.
type Responder interface {
	error
	Respond(http.ResponseWriter)
}

// New returns a Responder that emits the given HTTP status code and message.
func New(code int, msg string) error {
	return httpErr{code: code, msg: msg, body: true}
}

// Newf returns a Responder that emits the given HTTP status code and fmt.Sprintf formatted message.
func Newf(code int, format string, args ...any) error {
	return httpErr{code: code, msg: fmt.Sprintf(format, args...), body: true}
}

// Wrap returns a Responder that emits only the given HTTP status code. The message and the wrapped
// internal error are never sent to the client.
func Wrap(code int, msg string, cause error) error {
	return httpErr{code: code, msg: msg, cause: cause}
}

// Status returns a Responder that emits only the given HTTP status code.
func Status(code int) error {
	return httpErr{code: code, msg: http.StatusText(code)}
}

// Unauthorized returns a Responder that emits 401 with a Basic authentication challenge.
func Unauthorized(realm string) error {
	header := http.Header{}
	header.Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", realm))
	return httpErr{
		code:   http.StatusUnauthorized,
		msg:    http.StatusText(http.StatusUnauthorized),
		header: header,
	}
}

type httpErr struct {
	code   int
	msg    string
	body   bool
	header http.Header
	cause  error
}

func (e httpErr) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e httpErr) Respond(w http.ResponseWriter) {
	for k, values := range e.header {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
	if !e.body {
		w.WriteHeader(e.code)
		return
	}
	// http.Error is important here because it prevents content sniffing by forcing text/plain.
	http.Error(w, http.StatusText(e.code)+": "+e.msg, e.code)
}

func (e httpErr) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status code err responds with.
func StatusCode(err error) int {
	if e, ok := err.(httpErr); ok {
		return e.code
	}
	return http.StatusInternalServerError
}

// HandlerFunc is like http.HandlerFunc, but with a function signature that allows easier error handling.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

func (f HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := f(w, r)
	if err == nil {
		return
	}

	if code := StatusCode(err); code >= http.StatusInternalServerError {
		plog.Error("request failed", err, "path", r.URL.Path, "status", code)
	} else {
		plog.Debug("request rejected", "path", r.URL.Path, "status", code, "reason", err.Error())
	}

	switch err := err.(type) {
	case Responder:
		err.Respond(w)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}
