// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/go-jose/go-jose/v4"

	"go.kubeldap.dev/internal/constable"
)

const (
	minHMACKeyLength = 32

	errEmptyKey          = constable.Error("token signing key is empty")
	errUnsupportedPEMKey = constable.Error("token signing key is PEM but not a supported private key")
)

// Key is a signing key together with the only algorithm tokens signed by it are accepted with.
type Key struct {
	Algorithm jose.SignatureAlgorithm
	signing   any
	verifying any
}

// ParseKey accepts a PEM encoded RSA, ECDSA or Ed25519 private key (PKCS #1, SEC 1 or PKCS #8).
// Anything else is used as an HMAC secret, which must have at least 32 bytes.
func ParseKey(data []byte) (*Key, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyKey
	}

	block, _ := pem.Decode(data)
	if block == nil {
		if len(data) < minHMACKeyLength {
			return nil, fmt.Errorf("token signing secret must have at least %d bytes, got %d", minHMACKeyLength, len(data))
		}
		return &Key{Algorithm: jose.HS256, signing: data, verifying: data}, nil
	}

	private, err := parsePrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	switch k := private.(type) {
	case *rsa.PrivateKey:
		return &Key{Algorithm: jose.RS256, signing: k, verifying: k.Public()}, nil
	case *ecdsa.PrivateKey:
		alg, err := ecdsaAlgorithm(k.Curve)
		if err != nil {
			return nil, err
		}
		return &Key{Algorithm: alg, signing: k, verifying: k.Public()}, nil
	case ed25519.PrivateKey:
		return &Key{Algorithm: jose.EdDSA, signing: k, verifying: k.Public()}, nil
	default:
		return nil, errUnsupportedPEMKey
	}
}

func parsePrivateKey(der []byte) (crypto.Signer, error) {
	if k, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		if signer, ok := k.(crypto.Signer); ok {
			return signer, nil
		}
		return nil, errUnsupportedPEMKey
	}
	if k, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return k, nil
	}
	if k, err := x509.ParseECPrivateKey(der); err == nil {
		return k, nil
	}
	return nil, errUnsupportedPEMKey
}

func ecdsaAlgorithm(curve elliptic.Curve) (jose.SignatureAlgorithm, error) {
	switch curve {
	case elliptic.P256():
		return jose.ES256, nil
	case elliptic.P384():
		return jose.ES384, nil
	case elliptic.P521():
		return jose.ES512, nil
	default:
		return "", fmt.Errorf("unsupported ecdsa curve %s", curve.Params().Name)
	}
}
