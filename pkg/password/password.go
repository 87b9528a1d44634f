// Package password wraps bcrypt so hashing is an explicit, testable step
// in the registration path rather than a persistence-layer side effect.
package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for new hashes.
const Cost = 10

// Hash returns a salted bcrypt hash of the plaintext. The salt is
// generated per call and embedded in the output.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain matches the stored hash. A malformed
// stored hash counts as a mismatch, never an error.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
