package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidKey is returned for unreadable PEM, unsupported key types and mismatched pairs.
var ErrInvalidKey = errors.New("invalid key")

var privateParsers = map[string]func([]byte) (any, error){
	"RSA PRIVATE KEY": func(b []byte) (any, error) { return x509.ParsePKCS1PrivateKey(b) },
	"EC PRIVATE KEY":  func(b []byte) (any, error) { return x509.ParseECPrivateKey(b) },
	"PRIVATE KEY":     x509.ParsePKCS8PrivateKey,
}

var publicParsers = map[string]func([]byte) (any, error){
	"RSA PUBLIC KEY": func(b []byte) (any, error) { return x509.ParsePKCS1PublicKey(b) },
	"PUBLIC KEY":     x509.ParsePKIXPublicKey,
}

// LoadPEM resolves a key setting. Values starting with a PEM header are used inline, with
// escaped "\n" sequences expanded so keys fit in a single env var. Anything else is a file path.
func LoadPEM(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, ErrInvalidKey
	case strings.HasPrefix(s, "-----BEGIN"):
		return []byte(strings.ReplaceAll(s, `\n`, "\n")), nil
	default:
		return os.ReadFile(s)
	}
}

// LoadKeyPair parses the session signing key pair. Both halves must be supported keys of the
// same algorithm.
func LoadKeyPair(privatePEM, publicPEM string) (crypto.Signer, crypto.PublicKey, error) {
	signer, err := ParsePrivateKey(privatePEM)
	if err != nil {
		return nil, nil, fmt.Errorf("private key: %w", err)
	}
	pub, err := ParsePublicKey(publicPEM)
	if err != nil {
		return nil, nil, fmt.Errorf("public key: %w", err)
	}
	if alg := KeyAlg(pub); alg == "" || alg != KeyAlg(signer.Public()) {
		return nil, nil, fmt.Errorf("%w: key pair algorithms differ", ErrInvalidKey)
	}
	return signer, pub, nil
}

// ParsePrivateKey reads a PKCS#1, SEC 1 or PKCS#8 private key from inline PEM or a file.
func ParsePrivateKey(s string) (crypto.Signer, error) {
	key, err := parseKey(s, privateParsers)
	if err != nil {
		return nil, err
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, ErrInvalidKey
	}
	return signer, nil
}

// ParsePublicKey reads a PKCS#1 or PKIX public key from inline PEM or a file.
func ParsePublicKey(s string) (crypto.PublicKey, error) {
	return parseKey(s, publicParsers)
}

func parseKey(s string, parsers map[string]func([]byte) (any, error)) (any, error) {
	raw, err := LoadPEM(s)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, ErrInvalidKey
	}
	parse, ok := parsers[block.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported block %q", ErrInvalidKey, block.Type)
	}
	return parse(block.Bytes)
}

// KeyAlg names the JWS algorithm for pub: RS256 for RSA, ES256 for P-256 ECDSA, empty otherwise.
func KeyAlg(pub crypto.PublicKey) string {
	switch k := pub.(type) {
	case *rsa.PublicKey:
		return "RS256"
	case *ecdsa.PublicKey:
		if k.Curve == elliptic.P256() {
			return "ES256"
		}
	}
	return ""
}
