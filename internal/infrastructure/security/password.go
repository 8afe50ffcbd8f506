package security

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyKey   = errors.New("api key is empty")
	ErrInvalidKey = errors.New("api key does not match")
)

// KeyHasher stores API keys as bcrypt hashes. Keys are trimmed first so a
// trailing newline from a secrets file does not change the hash.
type KeyHasher struct {
	cost int
}

func NewKeyHasher() *KeyHasher {
	return &KeyHasher{cost: bcrypt.DefaultCost}
}

func (h *KeyHasher) Hash(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns ErrInvalidKey when key does not match hash. A malformed
// hash is reported as is.
func (h *KeyHasher) Compare(hash, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidKey
	}
	return err
}
