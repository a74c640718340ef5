// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizeDN(t *testing.T) {
	for _, tt := range []struct {
		name string
		dn   string
		want string
	}{
		{name: "already canonical", dn: "cn=nested,dc=example,dc=com", want: "cn=nested,dc=example,dc=com"},
		{name: "upper case types and values", dn: "CN=Nested,DC=Example,DC=COM", want: "cn=nested,dc=example,dc=com"},
		{name: "whitespace around separators", dn: "cn = Nested , dc=example,  dc=com ", want: "cn=nested,dc=example,dc=com"},
		{name: "multi-valued RDN is sorted", dn: "OU=Ops+CN=Admins,dc=example,dc=com", want: "cn=admins+ou=ops,dc=example,dc=com"},
		{name: "escaped comma stays escaped", dn: `CN=Smith\, John,DC=example`, want: `cn=smith\, john,dc=example`},
		{name: "hex escapes are normalized", dn: `cn=Smith\2C John,dc=example`, want: `cn=smith\, john,dc=example`},
		{name: "unicode values are case-folded", dn: "cn=ÄRZTE,dc=example", want: "cn=ärzte,dc=example"},
		{name: "not a DN", dn: "  Admins ", want: "admins"},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanonicalizeDN(tt.dn))
		})
	}
}

func TestCanonicalizeDNIsAnEquivalence(t *testing.T) {
	spellings := []string{
		"cn=Developers,ou=Groups,dc=example,dc=com",
		"CN=developers,OU=groups,DC=EXAMPLE,DC=com",
		"cn=developers, ou=groups, dc=example, dc=com",
		" Cn = DEVELOPERS ,Ou = Groups,dc = Example,dc = Com",
	}
	want := CanonicalizeDN(spellings[0])
	for _, s := range spellings {
		require.Equal(t, want, CanonicalizeDN(s), s)
		require.Equal(t, want, CanonicalizeDN(CanonicalizeDN(s)), "canonical form of %q is not stable", s)
	}
}

func TestEscapeDNValue(t *testing.T) {
	require.Equal(t, `\#1`, escapeDNValue("#1"))
	require.Equal(t, `\ a\ `, escapeDNValue(" a "))
	require.Equal(t, `a\+b\;c\<d\>e\"f\\g`, escapeDNValue(`a+b;c<d>e"f\g`))
	require.Equal(t, `a\00b`, escapeDNValue("a\x00b"))
	require.Equal(t, "a=b", escapeDNValue("a=b"))
}
