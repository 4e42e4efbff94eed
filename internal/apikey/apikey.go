// Package apikey generates bearer keys for the gateway.
package apikey

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of characters in a generated key.
const Length = 32

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generate returns a random alphanumeric key of Length characters.
func Generate() (string, error) {
	size := big.NewInt(int64(len(alphabet)))
	b := make([]byte, Length)
	for i := range b {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}

// EnvLines returns n lines of the form API_KEY_<i>="<key>", ready to paste
// into a .env file.
func EnvLines(n int) ([]string, error) {
	lines := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		key, err := Generate()
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("API_KEY_%d=%q", i, key))
	}
	return lines, nil
}
