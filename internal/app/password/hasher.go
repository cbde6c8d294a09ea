package password

import (
	"github.com/alexedwards/argon2id"

	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
)

// Hasher hashes and verifies user secrets. The pepper is appended before
// hashing so that a leaked database alone is not enough to brute-force.
type Hasher struct {
	pepper string
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := argon2id.CreateHash(plain+h.pepper, argon2id.DefaultParams)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return hash, nil
}

func (h *Hasher) Verify(plain, hash string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(plain+h.pepper, hash)
	if err != nil {
		return false, customErrors.WrapInternal(err, "verify password")
	}
	return ok, nil
}
