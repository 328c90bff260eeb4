// Package otp issues the six digit codes used to verify email ownership.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// CodeLength is the number of digits in a code.
	CodeLength = 6

	minCode = 100000
	maxCode = 999999
)

var codeSpan = big.NewInt(maxCode - minCode + 1)

// GenerateCode returns a code drawn uniformly from [100000, 999999].
// It keeps no state and is safe for concurrent use.
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		// crypto/rand only fails when the platform has no entropy source
		panic(fmt.Sprintf("otp: reading random source: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64()+minCode)
}

// ComputeExpiry returns the instant at which a code issued at now stops working.
func ComputeExpiry(now time.Time, ttl time.Duration) time.Time {
	return now.Add(ttl)
}

// IsExpired reports whether a code with the given expiry is unusable at now.
// A code is unusable at or after its expiry instant.
func IsExpired(expiry, now time.Time) bool {
	return !now.Before(expiry)
}

// Generator bundles the code source with the configured lifetime.
type Generator struct {
	TTL  time.Duration
	Code func() string
}

// NewGenerator returns a Generator producing random codes valid for ttl.
func NewGenerator(ttl time.Duration) Generator {
	return Generator{TTL: ttl, Code: GenerateCode}
}

// Issue returns a fresh code and its expiry relative to now.
func (g Generator) Issue(now time.Time) (string, time.Time) {
	code := g.Code
	if code == nil {
		code = GenerateCode
	}
	return code(), ComputeExpiry(now, g.TTL)
}
