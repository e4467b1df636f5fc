// Package hashing wraps bcrypt for password storage. Hash embeds a random
// salt, so hashing the same input twice yields different strings that both
// verify; Verify delegates mismatch timing to bcrypt itself.
package hashing

import "golang.org/x/crypto/bcrypt"

// Cost is the fixed bcrypt work factor. It is a build-time constant rather
// than a configuration field so that all stored hashes share one cost.
const Cost = 10

// Hash returns the bcrypt hash of the given plaintext password.
func Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
