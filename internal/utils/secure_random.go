package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// accountNumberFloor and accountNumberSpan bound generated account numbers to 1000000000-9999999999.
var (
	accountNumberFloor = big.NewInt(1_000_000_000)
	accountNumberSpan  = big.NewInt(9_000_000_000)
)

// GenerateAccountNumber returns a random 10 digit account number that never starts with zero,
// so it can not collide with the vault number.
func GenerateAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpan)
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}
	return n.Add(n, accountNumberFloor).String(), nil
}

// IsDigits reports whether s is exactly length ASCII digits.
func IsDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
