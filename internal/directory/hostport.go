// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

// hostPort is a validated "<host>[:<port>]" with the port defaulted.
type hostPort struct {
	host string
	port uint16
}

func (h hostPort) endpoint() string {
	return net.JoinHostPort(h.host, strconv.Itoa(int(h.port)))
}

// parseHostPort accepts a DNS hostname, an IPv4 address or an IPv6 address, each optionally
// followed by a port (IPv6 addresses with a port need brackets).
func parseHostPort(endpoint string, defaultPort uint16) (hostPort, error) {
	host, port, err := net.SplitHostPort(endpoint)
	if err != nil {
		host, port, err = net.SplitHostPort(net.JoinHostPort(endpoint, strconv.Itoa(int(defaultPort))))
	}
	if err != nil {
		return hostPort{}, err
	}

	integerPort, _ := strconv.Atoi(port)
	if len(validation.IsValidPortNum(integerPort)) > 0 {
		return hostPort{}, fmt.Errorf("invalid port %q", port)
	}

	if net.ParseIP(host) == nil && len(validation.IsDNS1123Subdomain(strings.ToLower(host))) > 0 {
		return hostPort{}, fmt.Errorf("host %q is not a valid hostname or IP address", host)
	}

	return hostPort{host: host, port: uint16(integerPort)}, nil
}
