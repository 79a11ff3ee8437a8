/*
Package randx generates cryptographically secure random identifiers.

It produces the short human-typed join codes that identify estimation rooms,
and UUID v4 strings for row identifiers.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// JoinCodeChars is the character set for join codes. Uppercase only:
	// codes are read out loud and typed, so case must not matter.
	JoinCodeChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// JoinCodeLength is the fixed length of a generated join code.
	JoinCodeLength = 6
)

var joinCodeCharsLen = big.NewInt(int64(len(JoinCodeChars)))

// JoinCode generates a fixed-length alphanumeric join code using crypto/rand.
func JoinCode() (string, error) {
	result := make([]byte, JoinCodeLength)

	for i := 0; i < JoinCodeLength; i++ {
		num, err := rand.Int(rand.Reader, joinCodeCharsLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for join code: %v", err)
		}

		result[i] = JoinCodeChars[num.Int64()]
	}

	return string(result), nil
}

// NormalizeJoinCode trims surrounding whitespace and upcases the given code,
// making join-code matching case-insensitive.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidJoinCode reports whether the (already normalized) string has the
// exact join-code length and character set.
func IsValidJoinCode(code string) bool {
	if len(code) != JoinCodeLength {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(JoinCodeChars, char) {
			return false
		}
	}

	return true
}

// NewID generates a UUID v4 string used as a row identifier.
func NewID() string {
	return uuid.New().String()
}
