package store

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

const (
	// CodeLength is the length of generated room codes
	CodeLength = 6

	// CodeChars are the characters used for room codes (excluding ambiguous chars)
	CodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateCode creates a random room code
func GenerateCode() string {
	code := make([]byte, CodeLength)
	for i := range CodeLength {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(CodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = CodeChars[rand.Intn(len(CodeChars))]
			continue
		}
		code[i] = CodeChars[n.Int64()]
	}
	return string(code)
}
