// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point of the kube-ldap server.
package main

import (
	"go.kubeldap.dev/internal/server"
)

func main() {
	server.Main()
}
