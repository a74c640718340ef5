// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"

	"go.kubeldap.dev/internal/constable"
)

// ErrConnectionNotSecured is returned by Bind and Search before any protocol operation when the
// connection is not protected by TLS and TLS enforcement is enabled.
const ErrConnectionNotSecured = constable.Error("ldap connection not tls protected")

// BindError is a bind failure other than invalid credentials, e.g. a network or protocol error.
type BindError struct {
	DN  string
	Err error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("error binding as %q: %v", e.DN, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// SearchNoResultError is returned when a search completed successfully without any entries.
type SearchNoResultError struct {
	Filter string
}

func (e *SearchNoResultError) Error() string {
	return fmt.Sprintf("no object found with filter [%s]", e.Filter)
}

// SearchProtocolError is returned when a search could not be dispatched or was interrupted,
// including filters which do not compile.
type SearchProtocolError struct {
	Filter string
	Err    error
}

func (e *SearchProtocolError) Error() string {
	return fmt.Sprintf("error searching with filter [%s]: %v", e.Filter, e.Err)
}

func (e *SearchProtocolError) Unwrap() error {
	return e.Err
}

// SearchStatusError carries the non-zero result code the server completed a search with.
type SearchStatusError struct {
	Filter     string
	ResultCode uint16
	Err        error
}

func (e *SearchStatusError) Error() string {
	return fmt.Sprintf("search with filter [%s] completed with result code %d (%s)",
		e.Filter, e.ResultCode, ldap.LDAPResultCodeMap[e.ResultCode])
}

func (e *SearchStatusError) Unwrap() error {
	return e.Err
}
