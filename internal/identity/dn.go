// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"sort"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"golang.org/x/text/cases"
)

// CanonicalizeDN returns the canonical string form of a distinguished name, so that two spellings
// of the same DN compare equal as strings. Attribute types are lower-cased, values are case-folded,
// whitespace around separators is dropped, the components of a multi-valued RDN are sorted and
// values are escaped as described in RFC 4514.
//
// A value which does not parse as a DN is only case-folded and trimmed.
func CanonicalizeDN(dn string) string {
	fold := cases.Fold()

	parsed, err := ldap.ParseDN(dn)
	if err != nil {
		return fold.String(strings.TrimSpace(dn))
	}

	rdns := make([]string, 0, len(parsed.RDNs))
	for _, rdn := range parsed.RDNs {
		components := make([]string, 0, len(rdn.Attributes))
		for _, atv := range rdn.Attributes {
			components = append(components,
				strings.ToLower(strings.TrimSpace(atv.Type))+"="+escapeDNValue(fold.String(atv.Value)))
		}
		sort.Strings(components)
		rdns = append(rdns, strings.Join(components, "+"))
	}
	return strings.Join(rdns, ",")
}

// escapeDNValue escapes an attribute value for use in a DN string (RFC 4514 section 2.4).
func escapeDNValue(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '"', c == '+', c == ',', c == ';', c == '<', c == '>', c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == 0:
			b.WriteString(`\00`)
		case i == 0 && (c == ' ' || c == '#'):
			b.WriteByte('\\')
			b.WriteByte(c)
		case i == len(value)-1 && c == ' ':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
