package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

const (
	codeMin  = 100000
	codeMax  = 999999
	codeSpan = codeMax - codeMin + 1
)

// Generator produces verification codes delivered to users out-of-band.
type Generator interface {
	RandomCode() (string, error)
}

// RandomGenerator draws 6-digit codes uniformly from [100000, 999999] using
// the platform CSPRNG. Codes are low entropy on purpose, they are short-lived
// and scoped to a single account.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) RandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("read random failed: %w", err)
	}

	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}
