// Package hashing implements one-way password hashing with scrypt.
//
// A process-wide pepper from configuration is appended to the password
// before hashing: rotating the pepper invalidates every stored hash.
// Each hash additionally carries its own random salt, encoded into the
// hash string together with the cost parameters:
//
//	$scrypt$N=32768,r=8,p=1$<salt_b64>$<key_b64>
package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	defaultN = 32768
	defaultR = 8
	defaultP = 1

	saltLength = 16
	keyLength  = 32
)

type Hasher struct {
	pepper string
}

func New(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// Hash derives an scrypt key from password+pepper under a fresh random salt
// and returns the encoded hash string.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password+h.pepper), salt, defaultN, defaultR, defaultP, keyLength)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$scrypt$N=%d,r=%d,p=%d$%s$%s",
		defaultN, defaultR, defaultP,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify reports whether password matches the encoded hash. Malformed or
// unsupported hash strings verify as false rather than erroring; the
// comparison itself is constant-time.
func (h *Hasher) Verify(password, encoded string) bool {
	n, r, p, salt, expected, err := decode(encoded)
	if err != nil {
		return false
	}

	key, err := scrypt.Key([]byte(password+h.pepper), salt, n, r, p, len(expected))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(key, expected) == 1
}

func decode(encoded string) (n, r, p int, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != "scrypt" {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed hash")
	}

	if _, err := fmt.Sscanf(parts[2], "N=%d,r=%d,p=%d", &n, &r, &p); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed params: %w", err)
	}
	// Reject attacker-controlled hash strings that would demand pathological
	// CPU/memory during verification.
	if n < 1024 || n > defaultN*4 || r < 1 || r > 32 || p < 1 || p > 16 {
		return 0, 0, 0, nil, nil, fmt.Errorf("params out of bounds")
	}

	b64 := base64.RawStdEncoding
	salt, err = b64.DecodeString(parts[3])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed salt: %w", err)
	}
	key, err = b64.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed key: %w", err)
	}
	if len(salt) < 8 || len(salt) > 64 || len(key) < 16 || len(key) > 128 {
		return 0, 0, 0, nil, nil, fmt.Errorf("salt or key length out of bounds")
	}
	return n, r, p, salt, key, nil
}
