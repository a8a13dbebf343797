// Package apikey generates and hashes the keys of API tokens.
package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const keyBytes = 20

// Generate returns a new random key of 40 hex characters.
func Generate() (string, error) {
	raw := make([]byte, keyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// Hash is the form in which keys are stored and looked up.
func Hash(key string) string {
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h)
}

// Prefix is the displayable start of a key.
func Prefix(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[:8]
}

// FromHeader extracts the key from an Authorization header value such as
// "Token <key>" or "Bearer <key>".
func FromHeader(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}
