package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPDigits is the fixed width of generated one-time passcodes.
const OTPDigits = 6

var otpSpace = big.NewInt(1_000_000)

// OTPGenerator produces short-lived numeric one-time passcodes.
type OTPGenerator struct {
	TTL time.Duration
}

func NewOTPGenerator(ttl time.Duration) *OTPGenerator {
	return &OTPGenerator{TTL: ttl}
}

// Generate returns a zero-padded 6-digit code drawn uniformly from
// 000000-999999 using crypto/rand, and its expiry instant.
func (g *OTPGenerator) Generate() (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", time.Time{}, err
	}
	code := fmt.Sprintf("%0*d", OTPDigits, n.Int64())
	return code, time.Now().Add(g.TTL), nil
}
