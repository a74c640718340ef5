// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mockldapconn

//go:generate go run -v go.uber.org/mock/mockgen  -destination=mockldapconn.go -package=mockldapconn -copyright_file=../../../hack/header.txt go.kubeldap.dev/internal/directory Conn
//go:generate go run -v go.uber.org/mock/mockgen  -destination=mockldapresponse.go -package=mockldapconn -copyright_file=../../../hack/header.txt github.com/go-ldap/ldap/v3 Response
