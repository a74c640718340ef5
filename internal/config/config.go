// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config contains functionality to load a Config from a file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"go.kubeldap.dev/internal/authenticator"
	"go.kubeldap.dev/internal/constable"
	"go.kubeldap.dev/internal/directory"
	"go.kubeldap.dev/internal/plog"
)

const (
	defaultAddress         = ":8443"
	defaultShutdownTimeout = 30 * time.Second
	defaultLDAPTimeout     = 30 * time.Second
	defaultUserFilter      = "(uid=%s)"
	defaultTokenLifetime   = 12 * time.Hour

	defaultUsernameAttribute = "uid"
	defaultUIDAttribute      = "uid"
	defaultGroupsAttribute   = "memberOf"
)

// FromPath loads a Config from a provided local file path, inserts any defaults (from the Config
// documentation), and verifies that the config is valid (Config documentation).
func FromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var config Config
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	setDefaults(&config)

	if err := plog.ValidateLogSpec(config.Log); err != nil {
		return nil, fmt.Errorf("validate log: %w", err)
	}
	if err := validateServer(&config.Server); err != nil {
		return nil, fmt.Errorf("validate server: %w", err)
	}
	if err := validateLDAP(&config.LDAP); err != nil {
		return nil, fmt.Errorf("validate ldap: %w", err)
	}
	if config.Token.SigningKeyFile == "" {
		return nil, constable.Error("validate token: signingKeyFile is required")
	}
	if config.Token.Lifetime.Duration <= 0 {
		return nil, constable.Error("validate token: lifetime must be positive")
	}

	return &config, nil
}

func setDefaults(c *Config) {
	maybeSetString(&c.Server.Address, defaultAddress)
	maybeSetString(&c.Server.Realm, "kubernetes")
	maybeSetDuration(&c.Server.ShutdownTimeout, defaultShutdownTimeout)

	maybeSetString(&c.LDAP.Protocol, string(directory.TLS))
	if c.LDAP.RequireTLS == nil {
		c.LDAP.RequireTLS = ptr.To(true)
	}
	maybeSetDuration(&c.LDAP.Timeout, defaultLDAPTimeout)
	maybeSetString(&c.LDAP.UserFilter, defaultUserFilter)

	maybeSetString(&c.Mapping.Username, defaultUsernameAttribute)
	maybeSetString(&c.Mapping.UID, defaultUIDAttribute)
	maybeSetString(&c.Mapping.Groups, defaultGroupsAttribute)

	maybeSetDuration(&c.Token.Lifetime, defaultTokenLifetime)
}

func maybeSetString(s *string, defaultValue string) {
	if *s == "" {
		*s = defaultValue
	}
}

func maybeSetDuration(d **metav1.Duration, defaultValue time.Duration) {
	if *d == nil {
		*d = &metav1.Duration{Duration: defaultValue}
	}
}

func validateServer(s *ServerSpec) error {
	if (s.TLSCertificateFile == "") != (s.TLSKeyFile == "") {
		return constable.Error("tlsCertificateFile and tlsKeyFile must be set together")
	}
	return nil
}

func validateLDAP(l *LDAPSpec) error {
	var missing []string
	if l.Host == "" {
		missing = append(missing, "host")
	}
	if l.BaseDN == "" {
		missing = append(missing, "baseDN")
	}
	if len(missing) > 0 {
		return constable.Error("missing required fields: " + strings.Join(missing, ", "))
	}

	switch p := directory.Protocol(l.Protocol); p {
	case directory.TLS, directory.StartTLS:
	case directory.Plain:
		if *l.RequireTLS {
			return fmt.Errorf("protocol %q requires requireTLS: false", p)
		}
	default:
		return fmt.Errorf("unknown protocol %q, valid choices are %q, %q and %q",
			p, directory.TLS, directory.StartTLS, directory.Plain)
	}

	if err := authenticator.ValidateFilterTemplate(l.UserFilter); err != nil {
		return err
	}
	if l.NestedGroups.Filter != "" && strings.Count(l.NestedGroups.Filter, "%s") != 1 {
		return constable.Error(`nested groups filter must contain "%s" exactly once`)
	}
	if l.Timeout.Duration <= 0 {
		return constable.Error("timeout must be positive")
	}
	return nil
}

// ReadFile returns the contents of a file named by the config, or nil when the name is empty.
func ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// ReadSecretFile is like ReadFile, without trailing newlines.
func ReadSecretFile(path string) (string, error) {
	data, err := ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
