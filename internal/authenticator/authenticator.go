// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package authenticator verifies end user credentials against the directory.
package authenticator

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"go.kubeldap.dev/internal/directory"
	"go.kubeldap.dev/internal/plog"
)

// UsernamePlaceholder is replaced by the escaped username in the user search filter.
const UsernamePlaceholder = "%s"

// Directory is the subset of directory.Client used by the Authenticator.
type Directory interface {
	Bind(ctx context.Context, dn, password string) (bool, error)
	Search(ctx context.Context, filter string, attributes ...string) ([]*directory.Entry, error)
}

var _ Directory = &directory.Client{}

// Authenticator locates a user entry by username and verifies the password by binding as it.
type Authenticator struct {
	dir            Directory
	filterTemplate string
}

// New returns an Authenticator. The filter template must contain the username placeholder exactly
// once, e.g. "(&(objectClass=person)(uid=%s))".
func New(dir Directory, filterTemplate string) (*Authenticator, error) {
	if err := ValidateFilterTemplate(filterTemplate); err != nil {
		return nil, err
	}
	return &Authenticator{dir: dir, filterTemplate: filterTemplate}, nil
}

func ValidateFilterTemplate(filterTemplate string) error {
	if n := strings.Count(filterTemplate, UsernamePlaceholder); n != 1 {
		return fmt.Errorf("user search filter must contain %q exactly once, found %d", UsernamePlaceholder, n)
	}
	return nil
}

// Authenticate reports whether the password is valid for the entry matching the username. When
// several entries match, the first one returned by the directory is used.
//
// Every failure is reported as false, so a caller cannot tell an unknown user from a wrong password
// or an unavailable directory. The only error returned is the error of ctx, once it is done.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (bool, error) {
	entries, err := a.dir.Search(ctx, a.filter(username), directory.NoAttributes)
	if err != nil {
		plog.DebugErr("user search failed during authentication", err)
		plog.All("user search failed during authentication", "username", username)
		return false, ctx.Err()
	}
	dn := entries[0].DN

	ok, err := a.dir.Bind(ctx, dn, password)
	if err != nil {
		plog.DebugErr("user bind failed during authentication", err)
		return false, ctx.Err()
	}
	if !ok {
		plog.Debug("user bind rejected the credentials")
		plog.All("user bind rejected the credentials", "dn", dn)
		return false, nil
	}

	plog.Trace("user authenticated")
	return true, nil
}

// GetAttributes returns the first entry matching the username, restricted to the given attributes.
func (a *Authenticator) GetAttributes(ctx context.Context, username string, attributes []string) (*directory.Entry, error) {
	entries, err := a.dir.Search(ctx, a.filter(username), attributes...)
	if err != nil {
		return nil, err
	}
	return entries[0], nil
}

func (a *Authenticator) filter(username string) string {
	return strings.Replace(a.filterTemplate, UsernamePlaceholder, ldap.EscapeFilter(username), 1)
}
