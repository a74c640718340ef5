// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"go.kubeldap.dev/internal/plog"
)

func TestHTTPErrs(t *testing.T) {
	t.Run("new", func(t *testing.T) {
		err := New(http.StatusNotFound, "no ca certificate configured")
		require.EqualError(t, err, "no ca certificate configured")
		require.Equal(t, http.StatusNotFound, StatusCode(err))
	})

	t.Run("newf", func(t *testing.T) {
		err := Newf(http.StatusMethodNotAllowed, "expected method %s", "POST")
		require.EqualError(t, err, "expected method POST")
	})

	t.Run("wrap", func(t *testing.T) {
		wrappedErr := fmt.Errorf("some internal error")
		err := Wrap(http.StatusInternalServerError, "unexpected error", wrappedErr)
		require.EqualError(t, err, "unexpected error: some internal error")
		require.True(t, errors.Is(err, wrappedErr), "expected error to be wrapped")
	})

	t.Run("respond with body", func(t *testing.T) {
		err := New(http.StatusNotFound, "boring public bits")
		require.Implements(t, (*Responder)(nil), err)
		rec := httptest.NewRecorder()
		err.(Responder).Respond(rec)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "Not Found: boring public bits\n", rec.Body.String())
		require.Equal(t, http.Header{
			"Content-Type":           []string{"text/plain; charset=utf-8"},
			"X-Content-Type-Options": []string{"nosniff"},
		}, rec.Header())
	})

	t.Run("wrapped errors respond without body", func(t *testing.T) {
		err := Wrap(http.StatusInternalServerError, "boring public bits", fmt.Errorf("some secret internal bits"))
		rec := httptest.NewRecorder()
		err.(Responder).Respond(rec)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Empty(t, rec.Body.String())
		require.Empty(t, rec.Header())
	})

	t.Run("unauthorized", func(t *testing.T) {
		err := Unauthorized("kubernetes")
		require.Equal(t, http.StatusUnauthorized, StatusCode(err))
		rec := httptest.NewRecorder()
		err.(Responder).Respond(rec)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Empty(t, rec.Body.String())
		require.Equal(t, http.Header{"Www-Authenticate": []string{`Basic realm="kubernetes"`}}, rec.Header())
		require.Equal(t, `Basic realm="kubernetes"`, rec.Header().Get("WWW-Authenticate"))
	})
}

func TestHandlerFuncChallenge(t *testing.T) {
	handler := HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		return Unauthorized("kubernetes")
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, `Basic realm="kubernetes"`, rec.Result().Header.Get("WWW-Authenticate"))
	require.Len(t, rec.Result().Header.Values("WWW-Authenticate"), 1)
	require.Empty(t, rec.Body.String())
}

func TestHandlerFunc(t *testing.T) {
	for _, tt := range []struct {
		name     string
		err      error
		wantCode int
		wantBody string
		wantLog  string
	}{
		{name: "success", err: nil, wantCode: http.StatusOK, wantBody: "ok"},
		{name: "responder", err: Status(http.StatusBadRequest), wantCode: http.StatusBadRequest, wantLog: `"message":"request rejected"`},
		{name: "other error", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantLog: `"message":"request failed"`},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			logs := plog.TestLogger(t)
			handler := HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
				if tt.err != nil {
					return tt.err
				}
				_, _ = w.Write([]byte("ok"))
				return nil
			})

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth", nil))
			require.Equal(t, tt.wantCode, rec.Code)
			require.Equal(t, tt.wantBody, rec.Body.String())
			require.Contains(t, logs.String(), tt.wantLog)
		})
	}
}
