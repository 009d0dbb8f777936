package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// KeyVerifier checks moderator api keys against a plain key, a bcrypt hash,
// or both. With neither configured every candidate is rejected.
type KeyVerifier struct {
	key  []byte
	hash []byte
}

func NewKeyVerifier(key, hash string) *KeyVerifier {
	return &KeyVerifier{key: []byte(key), hash: []byte(hash)}
}

func (v *KeyVerifier) Configured() bool {
	return v != nil && (len(v.key) > 0 || len(v.hash) > 0)
}

func (v *KeyVerifier) Verify(candidate string) bool {
	if !v.Configured() || candidate == "" {
		return false
	}
	if len(v.key) > 0 && subtle.ConstantTimeCompare(v.key, []byte(candidate)) == 1 {
		return true
	}
	if len(v.hash) > 0 && bcrypt.CompareHashAndPassword(v.hash, []byte(candidate)) == nil {
		return true
	}
	return false
}
