// Package credentials hashes and verifies account passwords.
package credentials

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher is the one-way password scheme used for stored credentials.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// BcryptHasher salts every hash and costs 2^cost rounds.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

// Hash blocks until the hash is computed; callers get a complete value or an error.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed. Malformed hashes never match.
func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// ErrPasswordTooLong is returned by Hash for passwords bcrypt cannot accept.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
