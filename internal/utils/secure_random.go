package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GeneratePIN generates a cryptographically secure numeric PIN of the given
// number of digits. Leading zeros are allowed.
func GeneratePIN(digits int) (string, error) {
	if digits <= 0 {
		return "", fmt.Errorf("digits must be positive")
	}
	pin := make([]byte, 0, digits)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to read random digit: %w", err)
		}
		pin = append(pin, byte('0'+n.Int64()))
	}
	return string(pin), nil
}
