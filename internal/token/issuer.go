// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package token signs identities into JWTs and verifies them again.
package token

import (
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"k8s.io/utils/clock"

	"go.kubeldap.dev/internal/constable"
	"go.kubeldap.dev/internal/identity"
)

const (
	// leeway tolerates clock skew between replicas which share a key.
	leeway = 30 * time.Second

	errNoExpiry = constable.Error("token has no expiry")
)

type Issuer struct {
	key    *Key
	signer jose.Signer
	ttl    time.Duration
	clock  clock.PassiveClock
}

func NewIssuer(key *Key, ttl time.Duration, clock clock.PassiveClock) (*Issuer, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: key.Algorithm, Key: key.signing},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create token signer: %w", err)
	}
	return &Issuer{key: key, signer: signer, ttl: ttl, clock: clock}, nil
}

// Issue returns a compact JWS with the identity claims plus exp and iat.
func (i *Issuer) Issue(id *identity.Identity) (string, error) {
	now := i.clock.Now()
	token, err := jwt.Signed(i.signer).
		Claims(jwt.Claims{
			IssuedAt: jwt.NewNumericDate(now),
			Expiry:   jwt.NewNumericDate(now.Add(i.ttl)),
		}).
		Claims(id).
		Serialize()
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}
	return token, nil
}

// Verify checks the signature, algorithm and expiry of a token from Issue and returns its identity.
func (i *Issuer) Verify(token string) (*identity.Identity, error) {
	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{i.key.Algorithm})
	if err != nil {
		return nil, fmt.Errorf("could not parse token: %w", err)
	}

	var standard jwt.Claims
	var id identity.Identity
	if err := parsed.Claims(i.key.verifying, &standard, &id); err != nil {
		return nil, fmt.Errorf("could not verify token: %w", err)
	}

	if standard.Expiry == nil {
		return nil, errNoExpiry
	}
	if err := standard.ValidateWithLeeway(jwt.Expected{Time: i.clock.Now()}, leeway); err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return &id, nil
}
