package otp

import (
	"crypto/sha1"

	"github.com/xlzd/gotp"
)

// CodeLength is the length of verification codes issued to accounts.
const CodeLength = 6

const secretLength = 32

// Generator produces numeric one-time codes.
type Generator interface {
	RandomCode() string
}

// GOTPGenerator derives codes from a fresh random HOTP secret per call.
// Codes never start with zero, so a 6 digit code lies in [100000, 999999].
type GOTPGenerator struct {
	digits int
}

func NewGOTPGenerator(digits int) *GOTPGenerator {
	if digits <= 1 {
		digits = CodeLength
	}
	return &GOTPGenerator{digits: digits}
}

func (g *GOTPGenerator) RandomCode() string {
	hotp := gotp.NewHOTP(gotp.RandomSecret(secretLength), g.digits, &gotp.Hasher{
		HashName: "sha1",
		Digest:   sha1.New,
	})

	// Rejection keeps the distribution uniform over codes without a leading zero.
	for counter := 0; ; counter++ {
		code := hotp.At(counter)
		if code[0] != '0' {
			return code
		}
	}
}
