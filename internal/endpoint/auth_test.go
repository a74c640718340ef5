// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"go.kubeldap.dev/internal/authenticator"
	"go.kubeldap.dev/internal/directory"
	"go.kubeldap.dev/internal/identity"
	"go.kubeldap.dev/internal/metrics"
	"go.kubeldap.dev/internal/plog"
	"go.kubeldap.dev/internal/token"
)

const (
	testSecret  = "0123456789abcdef0123456789abcdef"
	johnDN      = "uid=john,ou=people,dc=example,dc=com"
	johnHeader  = "Basic am9objpzZWNyZXQ="
	userFilter  = "(uid=%s)"
	nestedGroup = "cn=Nested,dc=example,dc=com"
)

// fakeDirectory answers user searches with entries and nested group searches with nested.
type fakeDirectory struct {
	entries   []*directory.Entry
	nested    []*directory.Entry
	searchErr error
	bindOK    bool

	searches int
	binds    int
}

func (f *fakeDirectory) Search(_ context.Context, filter string, _ ...string) ([]*directory.Entry, error) {
	f.searches++
	if strings.HasPrefix(filter, "(member:") {
		if len(f.nested) == 0 {
			return nil, &directory.SearchNoResultError{Filter: filter}
		}
		return f.nested, nil
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.entries) == 0 {
		return nil, &directory.SearchNoResultError{Filter: filter}
	}
	return f.entries, nil
}

func (f *fakeDirectory) Bind(_ context.Context, _, _ string) (bool, error) {
	f.binds++
	return f.bindOK, nil
}

type failingIssuer struct{}

func (failingIssuer) Issue(*identity.Identity) (string, error) {
	return "", errors.New("signing failed")
}

func newTestIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	key, err := token.ParseKey([]byte(testSecret))
	require.NoError(t, err)
	issuer, err := token.NewIssuer(key, time.Hour, clocktesting.NewFakeClock(time.Now()))
	require.NoError(t, err)
	return issuer
}

func johnEntry(attributes map[string][]string) *directory.Entry {
	return &directory.Entry{DN: johnDN, Attributes: attributes}
}

func TestAuthHandler(t *testing.T) {
	mapping := identity.Mapping{
		Username:     "uid",
		UID:          "uidNumber",
		Groups:       "memberOf",
		Extra:        []string{"mail"},
		NestedGroups: true,
	}

	tests := []struct {
		name          string
		method        string
		header        string
		dir           *fakeDirectory
		issuer        TokenIssuer
		wantStatus    int
		wantChallenge bool
		wantIdentity  *identity.Identity
		wantSearches  int
		wantBinds     int
		wantResult    string
	}{
		{
			name:   "valid credentials",
			header: johnHeader,
			dir: &fakeDirectory{
				bindOK: true,
				entries: []*directory.Entry{johnEntry(map[string][]string{
					"uid":       {"john"},
					"uidNumber": {"1000"},
					"memberOf":  {"CN=Ops,DC=example,DC=com"},
					"mail":      {"john@example.com"},
				})},
			},
			wantStatus: http.StatusOK,
			wantIdentity: &identity.Identity{
				Username: "john",
				UID:      "1000",
				Groups:   []string{"cn=ops,dc=example,dc=com"},
				Extra:    map[string]string{"mail": "john@example.com"},
			},
			wantSearches: 3,
			wantBinds:    1,
			wantResult:   metrics.ResultSuccess,
		},
		{
			name:   "absent groups with one nested group",
			header: johnHeader,
			dir: &fakeDirectory{
				bindOK:  true,
				entries: []*directory.Entry{johnEntry(map[string][]string{"uid": {"john"}})},
				nested:  []*directory.Entry{{DN: nestedGroup}},
			},
			wantStatus: http.StatusOK,
			wantIdentity: &identity.Identity{
				Username: "john",
				Groups:   []string{"cn=nested,dc=example,dc=com"},
				Extra:    map[string]string{},
			},
			wantSearches: 3,
			wantBinds:    1,
			wantResult:   metrics.ResultSuccess,
		},
		{
			name:   "first match wins",
			header: johnHeader,
			dir: &fakeDirectory{
				bindOK: true,
				entries: []*directory.Entry{
					johnEntry(map[string][]string{"uid": {"john"}}),
					{DN: "uid=john,ou=contractors,dc=example,dc=com", Attributes: map[string][]string{"uid": {"other-john"}}},
				},
			},
			wantStatus:   http.StatusOK,
			wantIdentity: &identity.Identity{Username: "john", Groups: []string{}, Extra: map[string]string{}},
			wantSearches: 3,
			wantBinds:    1,
			wantResult:   metrics.ResultSuccess,
		},
		{
			name:          "wrong password",
			header:        johnHeader,
			dir:           &fakeDirectory{bindOK: false, entries: []*directory.Entry{johnEntry(nil)}},
			wantStatus:    http.StatusUnauthorized,
			wantChallenge: true,
			wantSearches:  1,
			wantBinds:     1,
			wantResult:    metrics.ResultFailure,
		},
		{
			name:          "unknown user",
			header:        johnHeader,
			dir:           &fakeDirectory{},
			wantStatus:    http.StatusUnauthorized,
			wantChallenge: true,
			wantSearches:  1,
			wantResult:    metrics.ResultFailure,
		},
		{
			name:          "insecure directory connection looks like wrong credentials",
			header:        johnHeader,
			dir:           &fakeDirectory{searchErr: directory.ErrConnectionNotSecured},
			wantStatus:    http.StatusUnauthorized,
			wantChallenge: true,
			wantSearches:  1,
			wantResult:    metrics.ResultFailure,
		},
		{
			name:          "no authorization header",
			dir:           &fakeDirectory{},
			wantStatus:    http.StatusUnauthorized,
			wantChallenge: true,
		},
		{
			name:       "bearer scheme",
			header:     "Bearer xyz",
			dir:        &fakeDirectory{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "credentials without colon",
			header:     "Basic " + base64.StdEncoding.EncodeToString([]byte("john")),
			dir:        &fakeDirectory{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "signing fails",
			header:     johnHeader,
			dir:        &fakeDirectory{bindOK: true, entries: []*directory.Entry{johnEntry(map[string][]string{"uid": {"john"}})}},
			issuer:     failingIssuer{},
			wantStatus: http.StatusInternalServerError,
			// the nested group search is not needed to fail
			wantSearches: 3,
			wantBinds:    1,
			wantResult:   metrics.ResultError,
		},
		{
			name:       "wrong method",
			method:     http.MethodPost,
			header:     johnHeader,
			dir:        &fakeDirectory{},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			logs := plog.TestLogger(t)

			auth, err := authenticator.New(tt.dir, userFilter)
			require.NoError(t, err)
			mapper := identity.NewMapper(mapping, tt.dir)
			issuer := newTestIssuer(t)
			var tokenIssuer TokenIssuer = issuer
			if tt.issuer != nil {
				tokenIssuer = tt.issuer
			}
			recorder := metrics.New()

			handler := NewAuthHandler(auth, mapper, tokenIssuer, "", recorder)

			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req := httptest.NewRequest(method, "/auth", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantSearches, tt.dir.searches)
			require.Equal(t, tt.wantBinds, tt.dir.binds)
			require.NotContains(t, logs.String(), "secret")

			if tt.wantChallenge {
				require.Equal(t, `Basic realm="kubernetes"`, rec.Header().Get("WWW-Authenticate"))
			} else {
				require.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}

			if tt.wantResult != "" {
				require.Equal(t, 1.0, counterValue(t, recorder, tt.wantResult))
			}

			if tt.wantStatus != http.StatusOK {
				if tt.wantStatus != http.StatusMethodNotAllowed {
					require.Empty(t, rec.Body.String())
				}
				return
			}

			require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
			id, err := issuer.Verify(rec.Body.String())
			require.NoError(t, err)
			require.Equal(t, tt.wantIdentity, id)

			payload := decodePayload(t, rec.Body.String())
			require.Equal(t, "john", payload["username"])
			require.Contains(t, payload, "exp")
			require.Contains(t, payload, "iat")
		})
	}
}

func decodePayload(t *testing.T, jws string) map[string]any {
	t.Helper()
	parts := strings.Split(jws, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload
}

func counterValue(t *testing.T, m *metrics.Metrics, result string) float64 {
	t.Helper()
	return testutil.ToFloat64(m.AuthenticationsTotal.WithLabelValues(result))
}
