// Package auth provides credential primitives for the user endpoints.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher derives and verifies one-way salted password hashes.
type PasswordHasher interface {
	// Hash derives a salted hash from plaintext. Each call salts
	// independently, so equal plaintexts yield distinct hashes.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored hash.
	Verify(hash, plaintext string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher at the default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a salted bcrypt hash. bcrypt rejects plaintexts longer than
// 72 bytes; callers treat that as invalid input.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash.
func (h *BcryptHasher) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
