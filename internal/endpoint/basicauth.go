// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"encoding/base64"
	"strings"

	"go.kubeldap.dev/internal/constable"
)

const ErrMalformedAuthHeader = constable.Error("not a valid http basic authorization header")

// ParseBasicAuthHeader parses the value of an Authorization header using the Basic scheme. The
// password is everything after the first colon, so it may contain colons itself.
func ParseBasicAuthHeader(header string) (username, password string, err error) {
	scheme, encoded, _ := strings.Cut(header, " ")
	if scheme != "Basic" {
		return "", "", ErrMalformedAuthHeader
	}

	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return "", "", ErrMalformedAuthHeader
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", ErrMalformedAuthHeader
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", ErrMalformedAuthHeader
	}
	return username, password, nil
}
