// Package credentials hashes and verifies user passwords.
//
// The hash scheme is bcrypt: salted per record, slow by construction,
// and compared in constant time. Stored hashes are self-describing
// strings, so cost changes apply to new hashes without invalidating
// old ones.
package credentials

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies bcrypt password hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost.
// A cost of 0 selects bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of the raw password.
func (h *Hasher) Hash(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether raw matches the stored hash. A malformed or
// empty stored hash yields false, never an error.
func (h *Hasher) Verify(raw, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw)) == nil
}
