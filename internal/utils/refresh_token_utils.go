package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// RefreshTokenBytes is the entropy of an opaque refresh token.
const RefreshTokenBytes = 32

// GenerateRefreshToken returns a new opaque refresh token. It carries no claims.
func GenerateRefreshToken() (string, error) {
	return GenerateURLSafeToken(RefreshTokenBytes)
}

// HashRefreshToken returns the hex SHA-256 digest under which a refresh token is stored.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

