package uid

import (
	"crypto/rand"
	"math/big"
)

const tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// CharToken generates fixed-length alphanumeric tokens from crypto/rand.
//
// It backs the opaque correlation token handed to clients during OTP
// verification round-trips.
type CharToken struct {
	length int
}

// NewCharToken returns a generator producing tokens of the given length.
// Non-positive lengths fall back to 60 characters.
func NewCharToken(length int) *CharToken {
	if length < 1 {
		length = 60
	}
	return &CharToken{length: length}
}

// Generate returns a new random token.
func (c *CharToken) Generate() string {
	max := big.NewInt(int64(len(tokenAlphabet)))
	out := make([]byte, c.length)

	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failure is unrecoverable for a secret token
			panic("uid: crypto/rand unavailable: " + err.Error())
		}
		out[i] = tokenAlphabet[n.Int64()]
	}

	return string(out)
}
