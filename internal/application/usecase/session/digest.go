package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex SHA-256 of an uploaded file, used to detect re-uploads.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
