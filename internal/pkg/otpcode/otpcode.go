// Package otpcode generates the short numeric secrets delivered to users
// over SMS. Codes are fixed-width so they survive any channel that trims
// leading zeros, and are drawn uniformly from crypto/rand.
package otpcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Digits is the fixed code width used by the current policy.
const Digits = 6

// Generator produces one-time passcodes.
type Generator interface {
	Generate() string
}

// Numeric generates fixed-width numeric codes.
type Numeric struct {
	low  int64
	span int64
}

// NewNumeric returns a generator for Digits-wide codes in [100000, 999999].
func NewNumeric() *Numeric {
	low := int64(1)
	for i := 1; i < Digits; i++ {
		low *= 10
	}

	return &Numeric{low: low, span: low*10 - low}
}

// Generate returns a new uniformly distributed code.
func (n *Numeric) Generate() string {
	v, err := rand.Int(rand.Reader, big.NewInt(n.span))
	if err != nil {
		// crypto/rand failure is unrecoverable for a secret code
		panic("otpcode: crypto/rand unavailable: " + err.Error())
	}

	return strconv.FormatInt(n.low+v.Int64(), 10)
}
