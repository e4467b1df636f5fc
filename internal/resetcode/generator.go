// Package resetcode generates one-time password-reset codes: 6-digit decimal
// strings drawn from crypto/rand together with their expiry timestamp.
package resetcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Digits is the length of a reset code.
const Digits = 6

var codeSpace = big.NewInt(1_000_000)

// Code is a pending reset credential. Value is kept as a zero-padded string,
// not an integer, so leading zeros survive storage and comparison.
type Code struct {
	Value     string
	ExpiresAt time.Time
}

// Generate returns a code drawn uniformly from 000000–999999 that expires
// validity from now. It fails only if the system randomness source does.
func Generate(validity time.Duration) (Code, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return Code{}, fmt.Errorf("reading random source: %w", err)
	}

	return Code{
		Value:     fmt.Sprintf("%06d", n.Int64()),
		ExpiresAt: time.Now().Add(validity),
	}, nil
}
