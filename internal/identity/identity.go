// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package identity maps directory entries to Kubernetes user identities.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"go.kubeldap.dev/internal/directory"
	"go.kubeldap.dev/internal/plog"
)

// DefaultNestedGroupsFilter matches every group the DN is a member of, directly or through other
// groups, using the LDAP_MATCHING_RULE_IN_CHAIN extensible match of Active Directory.
const DefaultNestedGroupsFilter = "(member:1.2.840.113556.1.4.1941:=%s)"

// Mapping names the directory attributes which make up an Identity.
type Mapping struct {
	Username string
	UID      string
	Groups   string
	Extra    []string

	// NestedGroups enables the lookup of indirect group memberships.
	NestedGroups bool
	// NestedGroupsFilter is the membership query, "%s" is replaced by the escaped user DN.
	// Empty means DefaultNestedGroupsFilter.
	NestedGroupsFilter string
}

// Identity is the Kubernetes view of a directory user.
type Identity struct {
	Username string            `json:"username"`
	UID      string            `json:"uid"`
	Groups   []string          `json:"groups"`
	Extra    map[string]string `json:"extra"`
}

// Searcher runs the nested group query.
type Searcher interface {
	Search(ctx context.Context, filter string, attributes ...string) ([]*directory.Entry, error)
}

type Mapper struct {
	m        Mapping
	searcher Searcher
}

// NewMapper returns a Mapper. The searcher is only used when nested groups are enabled and may be
// nil otherwise.
func NewMapper(m Mapping, searcher Searcher) *Mapper {
	if m.NestedGroups && m.NestedGroupsFilter == "" {
		m.NestedGroupsFilter = DefaultNestedGroupsFilter
	}
	return &Mapper{m: m, searcher: searcher}
}

// RequiredAttributes returns the attributes ToIdentity reads, without duplicates.
func (m *Mapper) RequiredAttributes() []string {
	names := append([]string{m.m.Username, m.m.UID, m.m.Groups}, m.m.Extra...)
	return dedup(names, func(s string) string { return strings.ToLower(s) })
}

// ToIdentity converts the entry. Groups are canonical DNs in the order they were found, direct
// groups before nested ones. When the nested group query fails the direct groups are used alone.
func (m *Mapper) ToIdentity(ctx context.Context, entry *directory.Entry) (*Identity, error) {
	if entry == nil {
		return nil, errors.New("no directory entry to map")
	}

	groups := append([]string{}, entry.Get(m.m.Groups)...)
	if m.m.NestedGroups {
		groups = append(groups, m.nestedGroups(ctx, entry.DN)...)
	}

	canonical := make([]string, 0, len(groups))
	for _, group := range groups {
		if dn := CanonicalizeDN(group); dn != "" {
			canonical = append(canonical, dn)
		}
	}

	extra := map[string]string{}
	for _, name := range m.m.Extra {
		if values := entry.Get(name); len(values) > 0 {
			extra[name] = values[0]
		}
	}

	return &Identity{
		Username: entry.First(m.m.Username),
		UID:      entry.First(m.m.UID),
		Groups:   dedup(canonical, func(s string) string { return s }),
		Extra:    extra,
	}, nil
}

func (m *Mapper) nestedGroups(ctx context.Context, dn string) []string {
	if m.searcher == nil {
		return nil
	}

	filter := strings.Replace(m.m.NestedGroupsFilter, "%s", ldap.EscapeFilter(dn), 1)
	entries, err := m.searcher.Search(ctx, filter, directory.NoAttributes)
	if err != nil {
		noResult := &directory.SearchNoResultError{}
		if errors.As(err, &noResult) {
			plog.Trace("no nested groups found")
			return nil
		}
		plog.WarningErr("nested group search failed, using direct groups only", err)
		return nil
	}

	groups := make([]string, 0, len(entries))
	for _, e := range entries {
		groups = append(groups, e.DN)
	}
	return groups
}

func dedup(values []string, key func(string) string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, v)
	}
	return result
}
