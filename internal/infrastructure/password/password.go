// Package password wraps bcrypt for hashing room passwords.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates anything past 72 bytes
const maxLen = 72

var ErrTooLong = errors.New("password exceeds 72 bytes")

type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt hash of password, or nil for an empty password.
func (h *Hasher) Hash(password string) ([]byte, error) {
	if password == "" {
		return nil, nil
	}
	if len(password) > maxLen {
		return nil, ErrTooLong
	}
	return bcrypt.GenerateFromPassword([]byte(password), h.cost)
}

// Verify reports whether password matches hash. A nil hash means the
// room is open and any password is accepted.
func (h *Hasher) Verify(hash []byte, password string) bool {
	if len(hash) == 0 {
		return true
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
