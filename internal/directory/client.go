// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package directory implements the LDAP client used to verify credentials and look up entries.
package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

const (
	distinguishedNameAttributeName = "dn"
	defaultSearchTimeLimitSeconds  = 90
)

// Entry is the result of a search. Every attribute maps to all of its values, so a single valued
// attribute is a slice of one.
type Entry struct {
	DN         string
	Attributes map[string][]string
}

// Get returns the values of the named attribute, matching the name case-insensitively.
func (e *Entry) Get(name string) []string {
	if values, ok := e.Attributes[name]; ok {
		return values
	}
	for attributeName, values := range e.Attributes {
		if strings.EqualFold(attributeName, name) {
			return values
		}
	}
	return nil
}

// First returns the first value of the named attribute, or the empty string.
func (e *Entry) First(name string) string {
	values := e.Get(name)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

type ClientConfig struct {
	// BaseDN is the base of every search.
	BaseDN string

	// BindDN and BindPassword are used for the administrative bind before every search.
	// An empty BindDN skips the administrative bind.
	BindDN       string
	BindPassword string

	// SearchTimeLimitSeconds is sent to the server with every search. Zero means 90.
	SearchTimeLimitSeconds int
}

// Client performs binds and searches on the shared connection of a Handle.
type Client struct {
	handle *Handle
	c      ClientConfig
}

func NewClient(handle *Handle, config ClientConfig) *Client {
	if config.SearchTimeLimitSeconds == 0 {
		config.SearchTimeLimitSeconds = defaultSearchTimeLimitSeconds
	}
	return &Client{handle: handle, c: config}
}

// Bind performs a simple bind. It returns false without an error when the directory rejects the
// credentials, and false without contacting the directory when the password is empty, since an
// empty password would perform an unauthenticated bind.
//
// Caution: any later operation on the connection runs as this DN until the next bind.
func (c *Client) Bind(ctx context.Context, dn, password string) (bool, error) {
	conn, secure, release, err := c.handle.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	if !secure {
		return false, ErrConnectionNotSecured
	}

	if len(password) == 0 {
		return false, nil
	}

	if err := conn.Bind(dn, password); err != nil {
		if isInvalidCredentials(err) {
			return false, nil
		}
		return false, &BindError{DN: dn, Err: err}
	}
	return true, nil
}

// Search binds with the administrative credentials, runs the search and collects every entry until
// the server signals completion. When attributes are given, each entry contains exactly those of
// them which the server returned, keyed by the given spelling.
//
// All entries are returned in the order the server sent them. Callers which need one entry use the
// first one.
func (c *Client) Search(ctx context.Context, filter string, attributes ...string) ([]*Entry, error) {
	conn, secure, release, err := c.handle.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if !secure {
		return nil, ErrConnectionNotSecured
	}

	if len(c.c.BindDN) > 0 {
		if err := conn.Bind(c.c.BindDN, c.c.BindPassword); err != nil {
			return nil, &BindError{DN: c.c.BindDN, Err: err}
		}
	}

	response := conn.SearchAsync(ctx, c.searchRequest(filter, attributes), 0)

	var entries []*Entry
	for response.Next() {
		if e := response.Entry(); e != nil {
			entries = append(entries, newEntry(e, attributes))
		}
		// referrals are not followed
	}

	if err := response.Err(); err != nil {
		ldapErr := &ldap.Error{}
		if errors.As(err, &ldapErr) && isServerResultCode(ldapErr.ResultCode) {
			return nil, &SearchStatusError{Filter: filter, ResultCode: ldapErr.ResultCode, Err: err}
		}
		return nil, &SearchProtocolError{Filter: filter, Err: err}
	}

	if len(entries) == 0 {
		return nil, &SearchNoResultError{Filter: filter}
	}

	return entries, nil
}

func (c *Client) searchRequest(filter string, attributes []string) *ldap.SearchRequest {
	// See https://ldap.com/the-ldap-search-operation for general documentation of LDAP search options.
	return &ldap.SearchRequest{
		BaseDN:       c.c.BaseDN,
		Scope:        ldap.ScopeWholeSubtree,
		DerefAliases: ldap.NeverDerefAliases,
		SizeLimit:    0,
		TimeLimit:    c.c.SearchTimeLimitSeconds,
		TypesOnly:    false,
		Filter:       filter,
		Attributes:   requestedAttributes(attributes),
		Controls:     nil,
	}
}

// requestedAttributes drops "dn", which is not an attribute, but keeps the request from falling
// back to all attributes when "dn" was the only one.
func requestedAttributes(attributes []string) []string {
	if len(attributes) == 0 {
		return nil
	}
	requested := make([]string, 0, len(attributes))
	for _, a := range attributes {
		if !strings.EqualFold(a, distinguishedNameAttributeName) {
			requested = append(requested, a)
		}
	}
	if len(requested) == 0 {
		return []string{NoAttributes}
	}
	return requested
}

// NoAttributes requests entries without any attributes (RFC 4511 section 4.5.1.8).
const NoAttributes = "1.1"

func newEntry(e *ldap.Entry, attributes []string) *Entry {
	entry := &Entry{DN: e.DN, Attributes: map[string][]string{}}

	if len(attributes) == 0 {
		for _, a := range e.Attributes {
			entry.Attributes[a.Name] = a.Values
		}
		return entry
	}

	for _, name := range attributes {
		if values := e.GetEqualFoldAttributeValues(name); len(values) > 0 {
			entry.Attributes[name] = values
			continue
		}
		if strings.EqualFold(name, distinguishedNameAttributeName) {
			entry.Attributes[name] = []string{e.DN}
		}
	}
	return entry
}

func isInvalidCredentials(err error) bool {
	ldapErr := &ldap.Error{}
	if !errors.As(err, &ldapErr) {
		return false
	}
	return ldapErr.ResultCode == ldap.LDAPResultInvalidCredentials || ldapErr.ResultCode == ldap.ErrorEmptyPassword
}

// isServerResultCode reports whether the code was sent by the server, as opposed to the codes at
// and above ErrorNetwork which go-ldap uses for client side failures.
func isServerResultCode(code uint16) bool {
	return code != ldap.LDAPResultSuccess && code < ldap.ErrorNetwork
}
