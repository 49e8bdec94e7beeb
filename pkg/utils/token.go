package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"strings"
)

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSessionToken returns the opaque secret handed to the
// client. Only its hash (HashToken) is ever persisted.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return strings.ToLower(tokenEncoding.EncodeToString(bytes)), nil
}

// HashToken derives the storage id for a session token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
