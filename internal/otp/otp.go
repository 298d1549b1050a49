// Package otp derives time-based one-time passwords from a shared seed.
//
// The panel's 2FA uses the standard TOTP scheme: 30-second step, 6 digits,
// SHA-1, so codes here agree with the server's independent computation.
// Generation is a pure function of (seed, time); codes are computed fresh at
// the moment of use and never cached across challenges.
package otp

import (
	"encoding/base32"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/ksyq12/certpanel/internal/errors"
)

// Period is the TOTP time step in seconds.
const Period = 30

// Digits is the code length the panel expects.
const Digits = 6

// Generator produces codes for one validated seed.
type Generator struct {
	secret string
}

// New validates the base32 seed and returns a Generator. Authenticator apps
// commonly hand out unpadded seeds; padding is normalized before validation.
// A malformed seed is an INVALID_INPUT error, caught before any navigation.
func New(seed string) (*Generator, error) {
	normalized := normalizeSecret(seed)
	if normalized == "" {
		return nil, errors.InvalidInput("OTP seed is empty")
	}
	if _, err := base32.StdEncoding.DecodeString(normalized); err != nil {
		return nil, errors.InvalidInput("OTP seed is not valid base32")
	}
	return &Generator{secret: normalized}, nil
}

// Code returns the 6-digit code valid at t.
func (g *Generator) Code(t time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(g.secret, t, totp.ValidateOpts{
		Period:    Period,
		Skew:      0,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", errors.Wrap(errors.CodeInvalidInput, "generate one-time password", err)
	}
	return code, nil
}

// Now returns the code valid at the current wall-clock time.
func (g *Generator) Now() (string, error) {
	return g.Code(time.Now())
}

// normalizeSecret uppercases the seed, strips spaces, and restores base32
// padding stripped by most authenticator exports.
func normalizeSecret(seed string) string {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(seed), " ", ""))
	if s == "" {
		return ""
	}
	if rem := len(s) % 8; rem != 0 {
		s += strings.Repeat("=", 8-rem)
	}
	return s
}
