package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps a user or guest ID to a stable 32-character hex segment
// for storage keys, so raw identities never appear in object paths.
func HashUserKey(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:16])
}
