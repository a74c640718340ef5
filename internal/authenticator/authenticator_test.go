// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package authenticator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"go.kubeldap.dev/internal/directory"
	"go.kubeldap.dev/internal/plog"
)

const testFilterTemplate = "(&(objectClass=person)(uid=%s))"

type bindCall struct {
	dn, password string
}

type fakeDirectory struct {
	entries   []*directory.Entry
	searchErr error
	bindOK    bool
	bindErr   error

	searchedFilters    []string
	searchedAttributes [][]string
	binds              []bindCall
}

func (f *fakeDirectory) Search(_ context.Context, filter string, attributes ...string) ([]*directory.Entry, error) {
	f.searchedFilters = append(f.searchedFilters, filter)
	f.searchedAttributes = append(f.searchedAttributes, attributes)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.entries, nil
}

func (f *fakeDirectory) Bind(_ context.Context, dn, password string) (bool, error) {
	f.binds = append(f.binds, bindCall{dn: dn, password: password})
	return f.bindOK, f.bindErr
}

func TestNew(t *testing.T) {
	_, err := New(&fakeDirectory{}, "(uid=john)")
	require.EqualError(t, err, `user search filter must contain "%s" exactly once, found 0`)

	_, err = New(&fakeDirectory{}, "(|(uid=%s)(mail=%s))")
	require.EqualError(t, err, `user search filter must contain "%s" exactly once, found 2`)

	_, err = New(&fakeDirectory{}, testFilterTemplate)
	require.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	john := &directory.Entry{DN: "uid=john,ou=people,dc=example,dc=com"}
	otherJohn := &directory.Entry{DN: "uid=john,ou=contractors,dc=example,dc=com"}

	tests := []struct {
		name       string
		username   string
		password   string
		dir        *fakeDirectory
		wantOK     bool
		wantFilter string
		wantBinds  []bindCall
	}{
		{
			name:       "valid credentials",
			username:   "john",
			password:   "secret",
			dir:        &fakeDirectory{entries: []*directory.Entry{john}, bindOK: true},
			wantOK:     true,
			wantFilter: "(&(objectClass=person)(uid=john))",
			wantBinds:  []bindCall{{dn: john.DN, password: "secret"}},
		},
		{
			name:       "first match wins",
			username:   "john",
			password:   "secret",
			dir:        &fakeDirectory{entries: []*directory.Entry{john, otherJohn}, bindOK: true},
			wantOK:     true,
			wantFilter: "(&(objectClass=person)(uid=john))",
			wantBinds:  []bindCall{{dn: john.DN, password: "secret"}},
		},
		{
			name:       "wrong password",
			username:   "john",
			password:   "wrong",
			dir:        &fakeDirectory{entries: []*directory.Entry{john}, bindOK: false},
			wantOK:     false,
			wantFilter: "(&(objectClass=person)(uid=john))",
			wantBinds:  []bindCall{{dn: john.DN, password: "wrong"}},
		},
		{
			name:       "unknown user",
			username:   "nobody",
			password:   "secret",
			dir:        &fakeDirectory{searchErr: &directory.SearchNoResultError{Filter: "(&(objectClass=person)(uid=nobody))"}},
			wantOK:     false,
			wantFilter: "(&(objectClass=person)(uid=nobody))",
		},
		{
			name:       "directory refuses the insecure connection",
			username:   "john",
			password:   "secret",
			dir:        &fakeDirectory{searchErr: directory.ErrConnectionNotSecured},
			wantOK:     false,
			wantFilter: "(&(objectClass=person)(uid=john))",
		},
		{
			name:       "bind error",
			username:   "john",
			password:   "secret",
			dir:        &fakeDirectory{entries: []*directory.Entry{john}, bindErr: errors.New("connection reset")},
			wantOK:     false,
			wantFilter: "(&(objectClass=person)(uid=john))",
			wantBinds:  []bindCall{{dn: john.DN, password: "secret"}},
		},
		{
			name:       "filter metacharacters in the username are escaped",
			username:   "*)(uid=*",
			password:   "secret",
			dir:        &fakeDirectory{searchErr: &directory.SearchNoResultError{}},
			wantOK:     false,
			wantFilter: `(&(objectClass=person)(uid=\2a\29\28uid=\2a))`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			logs := plog.TestLogger(t)

			a, err := New(tt.dir, testFilterTemplate)
			require.NoError(t, err)

			ok, err := a.Authenticate(context.Background(), tt.username, tt.password)
			require.NoError(t, err)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, []string{tt.wantFilter}, tt.dir.searchedFilters)
			require.Equal(t, [][]string{{directory.NoAttributes}}, tt.dir.searchedAttributes)
			require.Equal(t, tt.wantBinds, tt.dir.binds)
			require.NotContains(t, logs.String(), tt.password)
		})
	}
}

func TestAuthenticateCancelled(t *testing.T) {
	a, err := New(&fakeDirectory{searchErr: context.Canceled}, testFilterTemplate)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := a.Authenticate(ctx, "john", "secret")
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ok)
}

func TestGetAttributes(t *testing.T) {
	john := &directory.Entry{DN: "uid=john,ou=people,dc=example,dc=com", Attributes: map[string][]string{"uid": {"john"}}}
	dir := &fakeDirectory{entries: []*directory.Entry{john, {DN: "uid=john,ou=contractors,dc=example,dc=com"}}}

	a, err := New(dir, testFilterTemplate)
	require.NoError(t, err)

	entry, err := a.GetAttributes(context.Background(), "john", []string{"uid", "memberOf"})
	require.NoError(t, err)
	require.Same(t, john, entry)
	require.Equal(t, [][]string{{"uid", "memberOf"}}, dir.searchedAttributes)

	dir.searchErr = &directory.SearchNoResultError{Filter: "(&(objectClass=person)(uid=john))"}
	_, err = a.GetAttributes(context.Background(), "john", []string{"uid"})
	require.EqualError(t, err, "no object found with filter [(&(objectClass=person)(uid=john))]")
}
