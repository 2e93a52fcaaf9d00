package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashRefreshToken returns the hex-encoded SHA-256 digest of a refresh token.
// Refresh tokens are high-entropy random strings, so a fast hash is enough;
// bcrypt is reserved for user passwords.
func HashRefreshToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

// CompareRefreshTokenHash reports whether the presented token matches the
// stored hash using a constant-time comparison.
func CompareRefreshTokenHash(storedHash string, presentedToken string) bool {
	presentedHash := HashRefreshToken(presentedToken)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(presentedHash)) == 1
}
