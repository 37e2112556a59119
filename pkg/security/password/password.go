// Package password implements the credential hashing schemes. The legacy
// scheme is an unsalted SHA-256 hex digest kept for compatibility with
// rows written by earlier deployments; bcrypt is the scheme to pick for
// anything that is not a demo.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// SHA256Hasher stores passwords as a fixed-length hex digest.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (SHA256Hasher) Verify(hash, password string) bool {
	sum := sha256.Sum256([]byte(password))
	enc := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(hash), []byte(enc)) == 1
}

// BcryptHasher stores salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Hasher is implemented by both schemes.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// ForScheme selects a hasher by configuration name; unknown names fall
// back to the legacy sha256 scheme.
func ForScheme(name string) Hasher {
	if name == "bcrypt" {
		return BcryptHasher{}
	}
	return SHA256Hasher{}
}
